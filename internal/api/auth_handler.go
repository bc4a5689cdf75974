package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gamecraft/internal/api/middleware"
	"gamecraft/internal/auth"
)

// AuthHandler serves the Kakao login flow and session lifecycle.
type AuthHandler struct {
	Auth        *auth.Service
	FrontendURL string
}

func NewAuthHandler(authService *auth.Service, frontendURL string) *AuthHandler {
	return &AuthHandler{Auth: authService, FrontendURL: frontendURL}
}

// LoginURL serves GET /auth/kakao/login-url.
func (h *AuthHandler) LoginURL(c *gin.Context) {
	OK(c, gin.H{
		"loginUrl": h.Auth.Kakao.LoginURL(uuid.NewString()),
		"message":  "카카오 로그인 URL",
	})
}

// Callback serves GET /auth/kakao/callback: code exchange, profile
// fetch, identity upsert and session issuance, then a redirect to the
// frontend carrying the token.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "인증 코드가 없습니다")
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	oauthToken, err := h.Auth.Kakao.Exchange(ctx, code)
	if err != nil {
		logger.Error("kakao code exchange", slog.String("error", err.Error()))
		h.redirectWithError(c, "로그인 처리 중 오류가 발생했습니다")
		return
	}

	profile, err := h.Auth.Kakao.FetchProfile(ctx, oauthToken)
	if err != nil {
		logger.Error("kakao profile fetch", slog.String("error", err.Error()))
		h.redirectWithError(c, "로그인 처리 중 오류가 발생했습니다")
		return
	}

	user, err := h.Auth.ProcessKakaoUser(ctx, profile)
	if err != nil {
		logger.Error("process kakao user", slog.String("error", err.Error()))
		h.redirectWithError(c, "로그인 처리 중 오류가 발생했습니다")
		return
	}

	sessionToken, err := h.Auth.Tokens.Generate(user)
	if err != nil {
		logger.Error("issue session token", slog.String("error", err.Error()))
		h.redirectWithError(c, "로그인 처리 중 오류가 발생했습니다")
		return
	}

	redirect := h.FrontendURL + "/auth/callback?success=true&token=" + url.QueryEscape(sessionToken)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (h *AuthHandler) redirectWithError(c *gin.Context, msg string) {
	c.Redirect(http.StatusTemporaryRedirect,
		h.FrontendURL+"/auth/callback?error="+url.QueryEscape(msg))
}

// UserInfo serves GET /auth/kakao/user-info for the authenticated
// session.
func (h *AuthHandler) UserInfo(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	user, err := h.Auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "사용자 정보를 찾을 수 없습니다")
			return
		}
		Internal(c, "사용자 정보 조회 오류")
		return
	}

	OK(c, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"kakaoId":      user.KakaoID,
			"name":         user.Name,
			"email":        user.Email,
			"profileImage": user.ProfileImage,
			"role":         user.Role,
			"status":       user.Status,
			"createdAt":    user.CreatedAt,
		},
		"nextSteps": gin.H{
			"applicationForm": "/application/create",
			"myApplications":  "/application/my-list",
		},
	})
}

// Logout serves POST /auth/kakao/logout, revoking the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	if err := h.Auth.Logout(c.Request.Context(), parts[1]); err != nil {
		middleware.LoggerFromContext(c).Error("logout", slog.String("error", err.Error()))
		Internal(c, "로그아웃 처리 오류")
		return
	}
	OK(c, gin.H{
		"message":     "로그아웃 되었습니다",
		"redirectUrl": "/",
	})
}
