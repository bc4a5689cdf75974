package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamecraft/internal/analytics"
	"gamecraft/internal/api/middleware"
	"gamecraft/internal/database"
)

// AnalyticsHandler serves the admin analytics dashboard and the
// spreadsheet export.
type AnalyticsHandler struct {
	DB *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{DB: db}
}

// Dashboard serves GET /admin/analytics/dashboard?days=N. The whole
// dataset is loaded once and every aggregate is computed in memory.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	days := intQuery(c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	now := time.Now()

	var apps []database.Application
	if err := h.DB.WithContext(c.Request.Context()).Find(&apps).Error; err != nil {
		Internal(c, "분석 데이터 조회 오류")
		return
	}
	var totalUsers int64
	if err := h.DB.WithContext(c.Request.Context()).Model(&database.User{}).Count(&totalUsers).Error; err != nil {
		Internal(c, "분석 데이터 조회 오류")
		return
	}

	start := now.AddDate(0, 0, -days)
	recent := make([]database.Application, 0, len(apps))
	for _, a := range apps {
		if a.CreatedAt.After(start) {
			recent = append(recent, a)
		}
	}

	OK(c, gin.H{
		"basicStats": analytics.Basic(apps, totalUsers, days, now),
		"trends": gin.H{
			"daily":   analytics.DailyTrend(recent, days, now),
			"weekly":  analytics.WeeklyTrend(apps, now),
			"monthly": analytics.MonthlyTrend(apps, now),
		},
		"experienceAnalysis": analytics.ExperienceAnalysis(apps),
		"companyAnalysis":    analytics.CompanyAnalysis(apps),
		"statusAnalysis":     analytics.StatusAnalysis(apps),
		"positionAnalysis":   analytics.PositionAnalysis(apps),
	})
}

// DownloadExcel serves GET /admin/analytics/download/excel as an xlsx
// attachment.
func (h *AnalyticsHandler) DownloadExcel(c *gin.Context) {
	var apps []database.Application
	if err := h.DB.WithContext(c.Request.Context()).Preload("User").Find(&apps).Error; err != nil {
		Internal(c, "분석 데이터 조회 오류")
		return
	}
	var totalUsers int64
	if err := h.DB.WithContext(c.Request.Context()).Model(&database.User{}).Count(&totalUsers).Error; err != nil {
		Internal(c, "분석 데이터 조회 오류")
		return
	}

	buf, err := analytics.ExportExcel(apps, totalUsers)
	if err != nil {
		middleware.LoggerFromContext(c).Error("export excel", slog.String("error", err.Error()))
		Internal(c, "엑셀 생성 오류")
		return
	}

	filename := analytics.ExportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/octet-stream", buf.Bytes())
}
