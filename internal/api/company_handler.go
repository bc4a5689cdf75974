package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamecraft/internal/database"
)

// CompanyHandler serves the company directory.
type CompanyHandler struct {
	DB *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{DB: db}
}

// List serves GET /api/companies with optional name search and paging.
func (h *CompanyHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", 20)
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	query := h.DB.WithContext(c.Request.Context()).
		Model(&database.Company{}).
		Where("status = ?", database.CompanyStatusActive)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		Internal(c, "회사 목록 조회 오류")
		return
	}

	var companies []database.Company
	if err := query.Order("name ASC").Offset(page * size).Limit(size).Find(&companies).Error; err != nil {
		Internal(c, "회사 목록 조회 오류")
		return
	}

	OK(c, gin.H{
		"companies":  companies,
		"pagination": NewPagination(page, size, total),
	})
}

// Get serves GET /api/companies/:id.
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 회사 ID입니다")
		return
	}

	var company database.Company
	if err := h.DB.WithContext(c.Request.Context()).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "회사를 찾을 수 없습니다")
			return
		}
		Internal(c, "회사 조회 오류")
		return
	}
	OK(c, gin.H{"company": company})
}

// WithActiveJobs serves GET /api/companies/with-jobs, listing
// directory companies that currently have ACTIVE postings, with the
// posting count.
func (h *CompanyHandler) WithActiveJobs(c *gin.Context) {
	type row struct {
		database.Company
		ActiveJobCount int64 `json:"activeJobCount"`
	}

	var rows []row
	err := h.DB.WithContext(c.Request.Context()).
		Model(&database.Company{}).
		Select("companies.*, COUNT(job_positions.id) AS active_job_count").
		Joins("JOIN job_positions ON job_positions.company = companies.name AND job_positions.status = ?",
			database.JobStatusActive).
		Where("companies.status = ?", database.CompanyStatusActive).
		Group("companies.id").
		Order("active_job_count DESC").
		Scan(&rows).Error
	if err != nil {
		Internal(c, "회사 목록 조회 오류")
		return
	}
	OK(c, gin.H{"companies": rows})
}
