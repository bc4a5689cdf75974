package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"gamecraft/internal/database"
	"gamecraft/internal/notify"
)

func TestNotificationList_ReportsUnreadCount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "3001")
	svc := notify.NewService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, user.ID, "시스템 알림", "점검 안내", database.NotifySystem); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}
	first, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("load first: %v", err)
	}
	if _, err := svc.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	h := NewNotificationHandler(svc)
	c, w := newTestContext(t, http.MethodGet, "/api/notifications", "")
	c.Set("userID", user.ID)
	h.List(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if unread := body["unreadCount"].(float64); unread != 2 {
		t.Fatalf("expected 2 unread, got %v", unread)
	}
	list, _ := body["notifications"].([]any)
	if len(list) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(list))
	}
}

func TestMarkRead_ForbidsOtherUsersNotification(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "3002")
	intruder := seedUser(t, db, "3003")
	svc := notify.NewService(db)

	n, err := svc.Create(context.Background(), owner.ID, "지원서 상태 변경", "검토중입니다", database.NotifyApplicationStatus)
	if err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	h := NewNotificationHandler(svc)
	c, w := newTestContext(t, http.MethodPut, "/api/notifications/1/read", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Set("userID", intruder.ID)
	h.MarkRead(c)
	expectStatus(t, w, http.StatusForbidden)

	got, err := svc.Get(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("reload notification: %v", err)
	}
	if got.IsRead {
		t.Fatalf("notification must stay unread after forbidden attempt")
	}
}

func TestDelete_ForbidsOtherUsersNotification(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "3004")
	intruder := seedUser(t, db, "3005")
	svc := notify.NewService(db)

	if _, err := svc.Create(context.Background(), owner.ID, "시스템 알림", "공지", database.NotifySystem); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	h := NewNotificationHandler(svc)
	c, w := newTestContext(t, http.MethodDelete, "/api/notifications/1", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Set("userID", intruder.ID)
	h.Delete(c)
	expectStatus(t, w, http.StatusForbidden)

	var count int64
	db.Model(&database.Notification{}).Count(&count)
	if count != 1 {
		t.Fatalf("notification must survive forbidden delete, count=%d", count)
	}
}

func TestMarkAllRead_ReturnsAffectedCount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "3006")
	svc := notify.NewService(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := svc.Create(ctx, user.ID, "새로운 채용공고", "공고 등록", database.NotifyNewJob); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}

	h := NewNotificationHandler(svc)
	c, w := newTestContext(t, http.MethodPut, "/api/notifications/read-all", "")
	c.Set("userID", user.ID)
	h.MarkAllRead(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if count := body["readCount"].(float64); count != 4 {
		t.Fatalf("expected 4 read, got %v", count)
	}
}
