package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamecraft/internal/database"
)

// SkillHandler serves the skill directory.
type SkillHandler struct {
	DB *gorm.DB
}

func NewSkillHandler(db *gorm.DB) *SkillHandler {
	return &SkillHandler{DB: db}
}

// List serves GET /api/skills, grouped by category in declaration
// order of the category enum.
func (h *SkillHandler) List(c *gin.Context) {
	var skills []database.Skill
	if err := h.DB.WithContext(c.Request.Context()).Order("category ASC, name ASC").Find(&skills).Error; err != nil {
		Internal(c, "기술 목록 조회 오류")
		return
	}
	OK(c, gin.H{
		"skills":     skills,
		"totalCount": len(skills),
	})
}

// ByCategory serves GET /api/skills/category/:category.
func (h *SkillHandler) ByCategory(c *gin.Context) {
	category, err := database.ParseSkillCategory(c.Param("category"))
	if err != nil {
		BadRequest(c, "잘못된 기술 카테고리입니다")
		return
	}

	var skills []database.Skill
	if err := h.DB.WithContext(c.Request.Context()).
		Where("category = ?", category).
		Order("name ASC").
		Find(&skills).Error; err != nil {
		Internal(c, "기술 목록 조회 오류")
		return
	}
	OK(c, gin.H{
		"category":            category,
		"categoryDescription": category.Description(),
		"skills":              skills,
	})
}

// Search serves GET /api/skills/search?q=...
func (h *SkillHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		BadRequest(c, "검색어가 필요합니다")
		return
	}

	var skills []database.Skill
	if err := h.DB.WithContext(c.Request.Context()).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%").
		Order("name ASC").
		Find(&skills).Error; err != nil {
		Internal(c, "기술 검색 오류")
		return
	}
	OK(c, gin.H{"skills": skills})
}

// Popular serves GET /api/skills/popular, ranking skills by how many
// postings reference them through the join table.
func (h *SkillHandler) Popular(c *gin.Context) {
	limit := intQuery(c, "limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	type row struct {
		database.Skill
		PositionCount int64 `json:"positionCount"`
	}
	var rows []row
	err := h.DB.WithContext(c.Request.Context()).
		Model(&database.Skill{}).
		Select("skills.*, COUNT(job_position_skills.id) AS position_count").
		Joins("JOIN job_position_skills ON job_position_skills.skill_id = skills.id").
		Group("skills.id").
		Order("position_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		Internal(c, "인기 기술 조회 오류")
		return
	}
	OK(c, gin.H{"skills": rows})
}
