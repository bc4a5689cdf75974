package api

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamecraft/internal/api/middleware"
	"gamecraft/internal/database"
)

// JobHandler serves the public job catalog.
type JobHandler struct {
	DB *gorm.DB
}

func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{DB: db}
}

// jobSummary is the list-view projection of a posting.
func jobSummary(job *database.JobPosition) gin.H {
	return gin.H{
		"id":                         job.ID,
		"slug":                       job.Slug,
		"title":                      job.Title,
		"company":                    job.Company,
		"companyLogo":                job.CompanyLogo,
		"location":                   job.Location,
		"jobType":                    job.JobType,
		"jobTypeDescription":         job.JobType.Description(),
		"experienceLevel":            job.ExperienceLevel,
		"experienceLevelDescription": job.ExperienceLevel.Description(),
		"salaryRange":                job.SalaryRange,
		"remoteWorkAvailable":        job.RemoteWorkAvailable,
		"viewCount":                  job.ViewCount,
		"applicationCount":           job.ApplicationCount,
		"createdAt":                  job.CreatedAt,
		"applicationDeadline":        job.ApplicationDeadline,
		"requiredSkills":             job.RequiredSkillList(),
		"preferredSkills":            job.PreferredSkillList(),
	}
}

func jobDetail(job *database.JobPosition, now time.Time) gin.H {
	detail := jobSummary(job)
	detail["companyDescription"] = job.CompanyDescription
	detail["description"] = job.Description
	detail["requirements"] = job.Requirements
	detail["preferredQualifications"] = job.PreferredQualifications
	detail["benefits"] = database.SplitSkills(job.Benefits)
	detail["contactEmail"] = job.ContactEmail
	detail["contactPerson"] = job.ContactPerson
	detail["isActive"] = job.IsActive(now)
	return detail
}

// List serves GET /positions with filters, search, sort and paging.
func (h *JobHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", 12)
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 12
	}

	query := h.DB.WithContext(c.Request.Context()).
		Model(&database.JobPosition{}).
		Where("status = ?", database.JobStatusActive)

	search := strings.TrimSpace(c.Query("search"))
	skill := strings.TrimSpace(c.Query("skill"))
	switch {
	case search != "":
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(company) LIKE ?",
			pattern, pattern, pattern,
		)
	case skill != "":
		pattern := "%" + strings.ToLower(skill) + "%"
		query = query.Where(
			"LOWER(required_skills) LIKE ? OR LOWER(preferred_skills) LIKE ?",
			pattern, pattern,
		)
	default:
		if company := strings.TrimSpace(c.Query("company")); company != "" {
			query = query.Where("LOWER(company) LIKE ?", "%"+strings.ToLower(company)+"%")
		}
		if location := strings.TrimSpace(c.Query("location")); location != "" {
			query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
		}
		// unknown enum values are ignored, not rejected
		if level, err := database.ParseExperienceLevel(c.Query("experienceLevel")); err == nil {
			query = query.Where("experience_level = ?", level)
		}
		if jobType, err := database.ParseJobType(c.Query("jobType")); err == nil {
			query = query.Where("job_type = ?", jobType)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		middleware.LoggerFromContext(c).Error("count positions", slog.String("error", err.Error()))
		Internal(c, "채용공고 조회 오류")
		return
	}

	if c.DefaultQuery("sort", "latest") == "popular" {
		query = query.Order("view_count DESC, created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	var jobs []database.JobPosition
	if err := query.Offset(page * size).Limit(size).Find(&jobs).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list positions", slog.String("error", err.Error()))
		Internal(c, "채용공고 조회 오류")
		return
	}

	list := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		list = append(list, jobSummary(&jobs[i]))
	}
	OK(c, gin.H{
		"jobs":       list,
		"pagination": NewPagination(page, size, total),
	})
}

// Get serves GET /positions/:id, bumping the view counter.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 채용공고 ID입니다")
		return
	}

	var job database.JobPosition
	if err := h.DB.WithContext(c.Request.Context()).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "채용공고를 찾을 수 없습니다")
			return
		}
		Internal(c, "채용공고 조회 오류")
		return
	}

	// single UPDATE so concurrent reads don't lose increments
	if err := h.DB.WithContext(c.Request.Context()).
		Model(&database.JobPosition{}).
		Where("id = ?", job.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		middleware.LoggerFromContext(c).Error("increment view count", slog.String("error", err.Error()))
	} else {
		job.ViewCount++
	}

	OK(c, gin.H{"job": jobDetail(&job, time.Now())})
}

// GetBySlug serves GET /positions/slug/:slug for ACTIVE postings only.
func (h *JobHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var job database.JobPosition
	err := h.DB.WithContext(c.Request.Context()).
		Where("slug = ? AND status = ?", slug, database.JobStatusActive).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "채용공고를 찾을 수 없습니다")
			return
		}
		Internal(c, "채용공고 조회 오류")
		return
	}

	if err := h.DB.WithContext(c.Request.Context()).
		Model(&database.JobPosition{}).
		Where("id = ?", job.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		middleware.LoggerFromContext(c).Error("increment view count", slog.String("error", err.Error()))
	} else {
		job.ViewCount++
	}

	OK(c, gin.H{"job": jobDetail(&job, time.Now())})
}

// Popular serves GET /positions/popular.
func (h *JobHandler) Popular(c *gin.Context) {
	limit := intQuery(c, "limit", 6)
	if limit <= 0 || limit > 50 {
		limit = 6
	}

	var jobs []database.JobPosition
	err := h.DB.WithContext(c.Request.Context()).
		Where("status = ?", database.JobStatusActive).
		Order("view_count DESC, created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		Internal(c, "인기 채용공고 조회 오류")
		return
	}

	list := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		list = append(list, gin.H{
			"id":               job.ID,
			"slug":             job.Slug,
			"title":            job.Title,
			"company":          job.Company,
			"companyLogo":      job.CompanyLogo,
			"location":         job.Location,
			"viewCount":        job.ViewCount,
			"applicationCount": job.ApplicationCount,
		})
	}
	OK(c, gin.H{"jobs": list})
}

// Recent serves GET /positions/recent for postings created in the last
// N days.
func (h *JobHandler) Recent(c *gin.Context) {
	days := intQuery(c, "days", 7)
	if days <= 0 {
		days = 7
	}

	var jobs []database.JobPosition
	err := h.DB.WithContext(c.Request.Context()).
		Where("status = ? AND created_at >= ?", database.JobStatusActive, time.Now().AddDate(0, 0, -days)).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		Internal(c, "최신 채용공고 조회 오류")
		return
	}

	list := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		list = append(list, gin.H{
			"id":          job.ID,
			"slug":        job.Slug,
			"title":       job.Title,
			"company":     job.Company,
			"companyLogo": job.CompanyLogo,
			"location":    job.Location,
			"createdAt":   job.CreatedAt,
		})
	}
	OK(c, gin.H{"jobs": list})
}

// DeadlineSoon serves GET /positions/deadline-soon for postings whose
// deadline falls inside the next N days.
func (h *JobHandler) DeadlineSoon(c *gin.Context) {
	days := intQuery(c, "days", 7)
	if days <= 0 {
		days = 7
	}
	now := time.Now()

	var jobs []database.JobPosition
	err := h.DB.WithContext(c.Request.Context()).
		Where("status = ? AND application_deadline IS NOT NULL AND application_deadline BETWEEN ? AND ?",
			database.JobStatusActive, now, now.AddDate(0, 0, days)).
		Order("application_deadline ASC").
		Find(&jobs).Error
	if err != nil {
		Internal(c, "마감임박 채용공고 조회 오류")
		return
	}

	list := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		list = append(list, gin.H{
			"id":                  job.ID,
			"slug":                job.Slug,
			"title":               job.Title,
			"company":             job.Company,
			"companyLogo":         job.CompanyLogo,
			"location":            job.Location,
			"applicationDeadline": job.ApplicationDeadline,
		})
	}
	OK(c, gin.H{"jobs": list})
}

type nameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// FilterOptions serves GET /positions/filter-options with the facet
// values the search form renders.
func (h *JobHandler) FilterOptions(c *gin.Context) {
	companies, err := h.groupCount(c, "company")
	if err != nil {
		Internal(c, "필터 옵션 조회 오류")
		return
	}
	locations, err := h.groupCount(c, "location")
	if err != nil {
		Internal(c, "필터 옵션 조회 오류")
		return
	}

	experienceLevels := make(map[database.ExperienceLevel]string)
	for _, level := range database.ExperienceLevels() {
		experienceLevels[level] = level.Description()
	}
	jobTypes := make(map[database.JobType]string)
	for _, t := range database.JobTypes() {
		jobTypes[t] = t.Description()
	}

	OK(c, gin.H{
		"companies":        companies,
		"locations":        locations,
		"experienceLevels": experienceLevels,
		"jobTypes":         jobTypes,
	})
}

// Stats serves GET /positions/stats.
func (h *JobHandler) Stats(c *gin.Context) {
	var totalActive int64
	err := h.DB.WithContext(c.Request.Context()).
		Model(&database.JobPosition{}).
		Where("status = ?", database.JobStatusActive).
		Count(&totalActive).Error
	if err != nil {
		Internal(c, "통계 조회 오류")
		return
	}

	companyStats, err := h.groupCount(c, "company")
	if err != nil {
		Internal(c, "통계 조회 오류")
		return
	}
	locationStats, err := h.groupCount(c, "location")
	if err != nil {
		Internal(c, "통계 조회 오류")
		return
	}
	experienceStats, err := h.groupCount(c, "experience_level")
	if err != nil {
		Internal(c, "통계 조회 오류")
		return
	}

	OK(c, gin.H{
		"totalActiveJobs": totalActive,
		"companyStats":    companyStats,
		"locationStats":   locationStats,
		"experienceStats": experienceStats,
	})
}

// groupCount counts ACTIVE postings grouped by a column, largest first.
func (h *JobHandler) groupCount(c *gin.Context, column string) ([]nameCount, error) {
	var rows []nameCount
	err := h.DB.WithContext(c.Request.Context()).
		Model(&database.JobPosition{}).
		Select(column+" AS name, COUNT(*) AS count").
		Where("status = ?", database.JobStatusActive).
		Group(column).
		Order("count DESC, name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
