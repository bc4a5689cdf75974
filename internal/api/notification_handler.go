package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamecraft/internal/api/middleware"
	"gamecraft/internal/notify"
)

// NotificationHandler serves the per-user notification feed.
type NotificationHandler struct {
	Notify *notify.Service
}

func NewNotificationHandler(notifySvc *notify.Service) *NotificationHandler {
	return &NotificationHandler{Notify: notifySvc}
}

// List serves GET /api/notifications, newest first with paging.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", 20)
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	items, total, err := h.Notify.List(c.Request.Context(), userID, page, size)
	if err != nil {
		Internal(c, "알림 조회 오류")
		return
	}

	unread, err := h.Notify.CountUnread(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "알림 조회 오류")
		return
	}

	OK(c, gin.H{
		"notifications": items,
		"unreadCount":   unread,
		"pagination":    NewPagination(page, size, total),
	})
}

// Unread serves GET /api/notifications/unread.
func (h *NotificationHandler) Unread(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	items, err := h.Notify.ListUnread(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "알림 조회 오류")
		return
	}
	OK(c, gin.H{
		"notifications": items,
		"unreadCount":   len(items),
	})
}

// MarkRead serves PUT /api/notifications/:id/read. Re-reading an
// already-read notification still succeeds.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 알림 ID입니다")
		return
	}

	existing, err := h.Notify.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "알림을 찾을 수 없습니다")
			return
		}
		Internal(c, "알림 읽음 처리 오류")
		return
	}
	if existing.UserID != userID {
		Forbidden(c, "본인의 알림만 읽을 수 있습니다")
		return
	}

	n, err := h.Notify.MarkRead(c.Request.Context(), uint(id))
	if err != nil {
		Internal(c, "알림 읽음 처리 오류")
		return
	}
	OK(c, gin.H{"notification": n})
}

// MarkAllRead serves PUT /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}

	count, err := h.Notify.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "알림 읽음 처리 오류")
		return
	}
	OK(c, gin.H{
		"message":   "모든 알림을 읽음 처리했습니다",
		"readCount": count,
	})
}

// Delete serves DELETE /api/notifications/:id.
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c, "로그인이 필요합니다")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 알림 ID입니다")
		return
	}

	existing, err := h.Notify.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "알림을 찾을 수 없습니다")
			return
		}
		Internal(c, "알림 삭제 오류")
		return
	}
	if existing.UserID != userID {
		Forbidden(c, "본인의 알림만 삭제할 수 있습니다")
		return
	}

	if err := h.Notify.Delete(c.Request.Context(), uint(id)); err != nil {
		Internal(c, "알림 삭제 오류")
		return
	}
	Message(c, "알림이 삭제되었습니다")
}
