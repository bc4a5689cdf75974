package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gamecraft/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAndList(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, 1, fmt.Sprintf("t%d", i), "m", database.NotifySystem); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(ctx, 2, "other user", "m", database.NotifySystem); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, total, err := svc.List(ctx, 1, 0, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(items) != 3 {
		t.Errorf("page size = %d, want 3", len(items))
	}

	items, _, err = svc.List(ctx, 1, 1, 3)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("second page size = %d, want 2", len(items))
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	n, err := svc.Create(ctx, 1, "title", "message", database.NotifyApplicationStatus)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.IsRead || n.ReadAt != nil {
		t.Fatal("new notification must start unread")
	}

	first, err := svc.MarkRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !first.IsRead || first.ReadAt == nil {
		t.Fatal("notification not marked read")
	}

	second, err := svc.MarkRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	if !second.ReadAt.Equal(*first.ReadAt) {
		t.Errorf("ReadAt changed on repeat mark: %v != %v", second.ReadAt, first.ReadAt)
	}
}

func TestMarkReadMissing(t *testing.T) {
	svc := NewService(newTestDB(t))
	if _, err := svc.MarkRead(context.Background(), 999); err != gorm.ErrRecordNotFound {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := svc.Create(ctx, 1, "t", "m", database.NotifySystem); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	n, _ := svc.Create(ctx, 1, "already", "m", database.NotifySystem)
	if _, err := svc.MarkRead(ctx, n.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	affected, err := svc.MarkAllRead(ctx, 1)
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if affected != 4 {
		t.Errorf("affected = %d, want 4", affected)
	}

	count, err := svc.CountUnread(ctx, 1)
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if count != 0 {
		t.Errorf("unread after mark all = %d, want 0", count)
	}
}

func TestUnreadQueries(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	a, _ := svc.Create(ctx, 1, "a", "m", database.NotifySystem)
	if _, err := svc.Create(ctx, 1, "b", "m", database.NotifySystem); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.MarkRead(ctx, a.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, err := svc.ListUnread(ctx, 1)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 1 || unread[0].Title != "b" {
		t.Errorf("unread = %+v, want single 'b'", unread)
	}

	count, err := svc.CountUnread(ctx, 1)
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	n, _ := svc.Create(ctx, 1, "t", "m", database.NotifySystem)
	if err := svc.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, n.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("second delete err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestCleanupOlderThan(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	old := database.Notification{UserID: 1, Title: "old", Type: database.NotifySystem}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -40)
	if err := db.Model(&old).Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if _, err := svc.Create(ctx, 1, "fresh", "m", database.NotifySystem); err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := svc.CleanupOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	var remaining []database.Notification
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "fresh" {
		t.Errorf("remaining = %+v, want single 'fresh'", remaining)
	}
}

func TestStatusChangeMessageUsesDescription(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	err := svc.NotifyApplicationStatusChange(ctx, 1, "게임크래프트 스튜디오", "백엔드 개발자", database.StatusAccepted, 7)
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	unread, err := svc.ListUnread(ctx, 1)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("unread = %d, want 1", len(unread))
	}
	n := unread[0]
	if !strings.Contains(n.Message, "합격") {
		t.Errorf("message %q missing status description", n.Message)
	}
	if n.RelatedEntityID == nil || *n.RelatedEntityID != 7 {
		t.Errorf("relatedEntityID = %v, want 7", n.RelatedEntityID)
	}
	if n.ActionURL != "/dashboard/applications/7" {
		t.Errorf("actionURL = %q", n.ActionURL)
	}
}
