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
	"gamecraft/internal/auth"
	"gamecraft/internal/database"
	"gamecraft/internal/notify"
	"gamecraft/internal/workflow"
)

// AdminHandler serves the review-side application operations.
type AdminHandler struct {
	DB     *gorm.DB
	Auth   *auth.Service
	Notify *notify.Service
}

func NewAdminHandler(db *gorm.DB, authService *auth.Service, notifySvc *notify.Service) *AdminHandler {
	return &AdminHandler{DB: db, Auth: authService, Notify: notifySvc}
}

// PromoteToAdmin serves POST /admin/promote-to-admin. Development
// helper promoting the caller.
func (h *AdminHandler) PromoteToAdmin(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	user, err := h.Auth.PromoteToAdmin(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "사용자 정보를 찾을 수 없습니다")
			return
		}
		Internal(c, "권한 부여 중 오류가 발생했습니다")
		return
	}

	OK(c, gin.H{
		"message": "관리자 권한이 부여되었습니다",
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}

// Dashboard serves GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var totalApplications, totalUsers int64
	if err := h.DB.WithContext(ctx).Model(&database.Application{}).Count(&totalApplications).Error; err != nil {
		Internal(c, "대시보드 조회 오류")
		return
	}
	if err := h.DB.WithContext(ctx).Model(&database.User{}).Count(&totalUsers).Error; err != nil {
		Internal(c, "대시보드 조회 오류")
		return
	}

	type statusRow struct {
		Status database.ApplicationStatus
		Count  int64
	}
	var statusRows []statusRow
	if err := h.DB.WithContext(ctx).
		Model(&database.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		Internal(c, "대시보드 조회 오류")
		return
	}
	statusStats := make(map[database.ApplicationStatus]int64, len(database.ApplicationStatuses()))
	for _, status := range database.ApplicationStatuses() {
		statusStats[status] = 0
	}
	for _, row := range statusRows {
		statusStats[row.Status] = row.Count
	}

	type companyRow struct {
		Company string
		Count   int64
	}
	var companyRows []companyRow
	if err := h.DB.WithContext(ctx).
		Model(&database.Application{}).
		Select("company, COUNT(*) AS count").
		Group("company").
		Scan(&companyRows).Error; err != nil {
		Internal(c, "대시보드 조회 오류")
		return
	}
	companyStats := make(map[string]int64, len(companyRows))
	for _, row := range companyRows {
		companyStats[row.Company] = row.Count
	}

	var recentCount int64
	if err := h.DB.WithContext(ctx).
		Model(&database.Application{}).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -7)).
		Count(&recentCount).Error; err != nil {
		Internal(c, "대시보드 조회 오류")
		return
	}

	OK(c, gin.H{
		"statistics": gin.H{
			"totalApplications":       totalApplications,
			"totalUsers":              totalUsers,
			"statusStats":             statusStats,
			"companyStats":            companyStats,
			"recentApplicationsCount": recentCount,
		},
	})
}

// ListApplications serves GET /admin/applications with status and
// company filters, newest first.
func (h *AdminHandler) ListApplications(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context()).
		Model(&database.Application{}).
		Preload("User").
		Order("created_at DESC")

	if raw := c.DefaultQuery("status", "ALL"); raw != "ALL" {
		status, err := database.ParseApplicationStatus(raw)
		if err != nil {
			BadRequest(c, "잘못된 지원서 상태입니다")
			return
		}
		query = query.Where("status = ?", status)
	}
	if company := c.Query("company"); company != "" {
		query = query.Where("LOWER(company) LIKE ?", "%"+strings.ToLower(company)+"%")
	}

	var apps []database.Application
	if err := query.Find(&apps).Error; err != nil {
		Internal(c, "지원서 목록 조회 오류")
		return
	}

	list := make([]gin.H, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		list = append(list, gin.H{
			"id":                app.ID,
			"applicantName":     app.User.Name,
			"applicantEmail":    app.User.Email,
			"company":           app.Company,
			"position":          app.Position,
			"status":            app.Status,
			"statusDescription": app.Status.Description(),
			"experienceLevel":   app.ExperienceLevel,
			"jobType":           app.JobType,
			"submittedAt":       app.CreatedAt,
			"updatedAt":         app.UpdatedAt,
		})
	}
	OK(c, gin.H{
		"totalCount":   len(apps),
		"applications": list,
	})
}

// GetApplication serves GET /admin/applications/:id with applicant
// contact details.
func (h *AdminHandler) GetApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 지원서 ID입니다")
		return
	}

	var app database.Application
	if err := h.DB.WithContext(c.Request.Context()).Preload("User").First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "지원서를 찾을 수 없습니다")
			return
		}
		Internal(c, "지원서 조회 오류")
		return
	}

	OK(c, gin.H{
		"application": gin.H{
			"id":                 app.ID,
			"company":            app.Company,
			"position":           app.Position,
			"experienceLevel":    app.ExperienceLevel,
			"jobType":            app.JobType,
			"skills":             app.SkillList(),
			"coverLetter":        app.CoverLetter,
			"expectedSalary":     app.ExpectedSalary,
			"availableStartDate": app.AvailableStartDate,
			"workLocation":       app.WorkLocation,
			"referenceLink":      app.ReferenceLink,
			"resumeFileName":     app.ResumeFileName,
			"portfolioFileName":  app.PortfolioFileName,
			"status":             app.Status,
			"statusDescription":  app.Status.Description(),
			"adminNotes":         app.AdminNotes,
			"submittedAt":        app.CreatedAt,
			"updatedAt":          app.UpdatedAt,
			"applicant": gin.H{
				"id":           app.User.ID,
				"name":         app.User.Name,
				"email":        app.User.Email,
				"phone":        app.User.Phone,
				"github":       app.User.Github,
				"portfolio":    app.User.Portfolio,
				"profileImage": app.User.ProfileImage,
			},
		},
	})
}

type statusChangeRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"adminNotes"`
}

// SetStatus serves PUT /admin/applications/:id/status. It assigns any
// known status without consulting the transition table.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	h.changeStatus(c, false)
}

// Transition serves POST /admin/applications/:id/transition. The move
// must be a legal edge of the review workflow.
func (h *AdminHandler) Transition(c *gin.Context) {
	h.changeStatus(c, true)
}

func (h *AdminHandler) changeStatus(c *gin.Context, checked bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 지원서 ID입니다")
		return
	}

	var req statusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "상태 값이 필요합니다")
		return
	}
	status, err := database.ParseApplicationStatus(req.Status)
	if err != nil {
		BadRequest(c, "잘못된 지원서 상태입니다")
		return
	}

	var app database.Application
	if err := h.DB.WithContext(c.Request.Context()).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "지원서를 찾을 수 없습니다")
			return
		}
		Internal(c, "지원서 조회 오류")
		return
	}

	if checked {
		if _, err := workflow.Transition(app.Status, status); err != nil {
			var invalid *workflow.ErrInvalidTransition
			if errors.As(err, &invalid) {
				BadRequest(c, "허용되지 않는 상태 전이입니다: "+invalid.Error())
				return
			}
			Internal(c, "상태 변경 오류")
			return
		}
	}

	updates := map[string]any{"status": status}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}
	if err := h.DB.WithContext(c.Request.Context()).Model(&app).Updates(updates).Error; err != nil {
		Internal(c, "상태 변경 오류")
		return
	}

	if err := h.Notify.NotifyApplicationStatusChange(
		c.Request.Context(), app.UserID, app.Company, app.Position, status, app.ID,
	); err != nil {
		middleware.LoggerFromContext(c).Error("status change notification", slog.String("error", err.Error()))
	}

	OK(c, gin.H{
		"message":           "지원서 상태가 변경되었습니다: " + status.Description(),
		"applicationId":     app.ID,
		"newStatus":         status,
		"statusDescription": status.Description(),
	})
}

// CleanupNotifications serves DELETE /admin/notifications/cleanup,
// removing notifications older than the retention window.
func (h *AdminHandler) CleanupNotifications(c *gin.Context) {
	days := intQuery(c, "days", 30)
	if days <= 0 {
		BadRequest(c, "잘못된 보관 기간입니다")
		return
	}

	removed, err := h.Notify.CleanupOlderThan(c.Request.Context(), days)
	if err != nil {
		Internal(c, "알림 정리 오류")
		return
	}
	OK(c, gin.H{
		"message":      "오래된 알림이 정리되었습니다",
		"removedCount": removed,
	})
}
