package api

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamecraft/internal/api/middleware"
	"gamecraft/internal/database"
	"gamecraft/internal/notify"
	"gamecraft/internal/storage"
)

// defaultPositions backs the application form when no posting matches.
var defaultPositions = []string{
	"백엔드 개발자", "프론트엔드 개발자", "풀스택 개발자",
	"게임 서버 개발자", "모바일 개발자", "DevOps 엔지니어",
}

// ApplicationHandler serves the candidate-facing application workflow.
type ApplicationHandler struct {
	DB      *gorm.DB
	Notify  *notify.Service
	Storage *storage.Client
}

func NewApplicationHandler(db *gorm.DB, notifySvc *notify.Service, storageClient *storage.Client) *ApplicationHandler {
	return &ApplicationHandler{DB: db, Notify: notifySvc, Storage: storageClient}
}

// FormInfo serves GET /application/form-info with the option lists the
// submission form renders. Companies come from the directory.
func (h *ApplicationHandler) FormInfo(c *gin.Context) {
	var names []string
	err := h.DB.WithContext(c.Request.Context()).
		Model(&database.Company{}).
		Where("status = ?", database.CompanyStatusActive).
		Order("id ASC").
		Pluck("name", &names).Error
	if err != nil {
		Internal(c, "폼 정보 조회 오류")
		return
	}
	names = append(names, "기타")

	experienceLevels := make(map[database.ExperienceLevel]string)
	for _, level := range database.ExperienceLevels() {
		experienceLevels[level] = level.Description()
	}
	jobTypes := make(map[database.JobType]string)
	for _, t := range database.JobTypes() {
		jobTypes[t] = t.Description()
	}

	OK(c, gin.H{
		"companies":        names,
		"positions":        defaultPositions,
		"experienceLevels": experienceLevels,
		"jobTypes":         jobTypes,
	})
}

type createApplicationRequest struct {
	Company            string   `json:"company" binding:"required"`
	Position           string   `json:"position" binding:"required"`
	ExperienceLevel    string   `json:"experienceLevel" binding:"required"`
	JobType            string   `json:"jobType" binding:"required"`
	CoverLetter        string   `json:"coverLetter" binding:"required"`
	Skills             []string `json:"skills"`
	ExpectedSalary     string   `json:"expectedSalary"`
	AvailableStartDate string   `json:"availableStartDate"`
	WorkLocation       string   `json:"workLocation"`
	ReferenceLink      string   `json:"referenceLink"`
}

// Create serves POST /application/create. A new application always
// starts in SUBMITTED and the submitter gets a receipt notification.
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "필수 항목이 누락되었습니다")
		return
	}
	level, err := database.ParseExperienceLevel(req.ExperienceLevel)
	if err != nil {
		BadRequest(c, "잘못된 경력 레벨입니다")
		return
	}
	jobType, err := database.ParseJobType(req.JobType)
	if err != nil {
		BadRequest(c, "잘못된 고용 형태입니다")
		return
	}

	app := database.Application{
		UserID:             userID,
		Company:            req.Company,
		Position:           req.Position,
		ExperienceLevel:    level,
		JobType:            jobType,
		Skills:             database.JoinSkills(req.Skills),
		CoverLetter:        req.CoverLetter,
		ExpectedSalary:     req.ExpectedSalary,
		AvailableStartDate: req.AvailableStartDate,
		WorkLocation:       req.WorkLocation,
		ReferenceLink:      req.ReferenceLink,
		Status:             database.StatusSubmitted,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&app).Error; err != nil {
		middleware.LoggerFromContext(c).Error("create application", slog.String("error", err.Error()))
		Internal(c, "지원서 제출 중 오류가 발생했습니다")
		return
	}

	// best effort: the receipt and counter never fail the submission
	if err := h.Notify.NotifyApplicationSubmitted(c.Request.Context(), userID, app.Company, app.Position, app.ID); err != nil {
		middleware.LoggerFromContext(c).Error("submission notification", slog.String("error", err.Error()))
	}
	if err := h.DB.WithContext(c.Request.Context()).
		Model(&database.JobPosition{}).
		Where("company = ? AND title = ?", app.Company, app.Position).
		UpdateColumn("application_count", gorm.Expr("application_count + 1")).Error; err != nil {
		middleware.LoggerFromContext(c).Error("bump application count", slog.String("error", err.Error()))
	}

	OK(c, gin.H{
		"message":       "지원서가 성공적으로 제출되었습니다",
		"applicationId": app.ID,
		"company":       app.Company,
		"position":      app.Position,
		"status":        app.Status,
	})
}

// MyList serves GET /application/my-list, newest first.
func (h *ApplicationHandler) MyList(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	var apps []database.Application
	err := h.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		Internal(c, "목록 조회 오류")
		return
	}

	list := make([]gin.H, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		list = append(list, gin.H{
			"id":          app.ID,
			"company":     app.Company,
			"position":    app.Position,
			"status":      app.Status.Description(),
			"submittedAt": app.CreatedAt,
		})
	}
	OK(c, gin.H{
		"totalCount":   len(apps),
		"applications": list,
	})
}

// UploadFile serves POST /application/:id/files?kind=resume|portfolio,
// storing the attachment and recording its key on the owner's
// application.
func (h *ApplicationHandler) UploadFile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 지원서 ID입니다")
		return
	}
	kind, err := storage.ParseAttachmentKind(c.DefaultQuery("kind", string(storage.KindResume)))
	if err != nil {
		BadRequest(c, "잘못된 파일 종류입니다")
		return
	}

	var app database.Application
	if err := h.DB.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "지원서를 찾을 수 없습니다")
			return
		}
		Internal(c, "지원서 조회 오류")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "파일이 필요합니다")
		return
	}
	reader, err := file.Open()
	if err != nil {
		Internal(c, "파일 처리 오류")
		return
	}
	defer reader.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := storage.ObjectKey(app.ID, kind, file.Filename)
	if err := h.Storage.UploadAttachment(c.Request.Context(), objectKey, reader, file.Size, contentType); err != nil {
		middleware.LoggerFromContext(c).Error("upload attachment", slog.String("error", err.Error()))
		Internal(c, "파일 업로드 오류")
		return
	}

	updates := map[string]any{}
	var staleKey string
	switch kind {
	case storage.KindResume:
		staleKey = app.ResumeObjectKey
		updates["resume_file_name"] = file.Filename
		updates["resume_object_key"] = objectKey
	case storage.KindPortfolio:
		staleKey = app.PortfolioObjectKey
		updates["portfolio_file_name"] = file.Filename
		updates["portfolio_object_key"] = objectKey
	}
	if err := h.DB.WithContext(c.Request.Context()).Model(&app).Updates(updates).Error; err != nil {
		Internal(c, "파일 정보 저장 오류")
		return
	}
	if staleKey != "" {
		if err := h.Storage.DeleteAttachment(c.Request.Context(), staleKey); err != nil {
			middleware.LoggerFromContext(c).Error("remove stale attachment", slog.String("error", err.Error()))
		}
	}

	OK(c, gin.H{
		"message":  "파일이 업로드되었습니다",
		"kind":     kind,
		"fileName": file.Filename,
	})
}

// FileURL serves GET /application/:id/files?kind=..., returning a
// limited-time download link for the caller's own attachment.
func (h *ApplicationHandler) FileURL(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 지원서 ID입니다")
		return
	}
	kind, err := storage.ParseAttachmentKind(c.DefaultQuery("kind", string(storage.KindResume)))
	if err != nil {
		BadRequest(c, "잘못된 파일 종류입니다")
		return
	}

	var app database.Application
	if err := h.DB.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "지원서를 찾을 수 없습니다")
			return
		}
		Internal(c, "지원서 조회 오류")
		return
	}

	objectKey := app.ResumeObjectKey
	if kind == storage.KindPortfolio {
		objectKey = app.PortfolioObjectKey
	}
	if objectKey == "" {
		NotFound(c, "업로드된 파일이 없습니다")
		return
	}

	url, err := h.Storage.PresignedURL(c.Request.Context(), objectKey, 15*time.Minute)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign attachment", slog.String("error", err.Error()))
		Internal(c, "다운로드 링크 생성 오류")
		return
	}
	OK(c, gin.H{"url": url})
}
