// Package notify implements the append-only per-user notification sink.
package notify

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gamecraft/internal/database"
)

// Service persists and queries notification records.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create appends a plain notification.
func (s *Service) Create(ctx context.Context, userID uint, title, message string, typ database.NotificationType) (*database.Notification, error) {
	n := database.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &n, nil
}

// CreateWithAction appends a notification carrying an action URL and a
// related entity id.
func (s *Service) CreateWithAction(ctx context.Context, userID uint, title, message string, typ database.NotificationType, actionURL string, relatedEntityID uint) (*database.Notification, error) {
	n := database.Notification{
		UserID:          userID,
		Title:           title,
		Message:         message,
		Type:            typ,
		ActionURL:       actionURL,
		RelatedEntityID: &relatedEntityID,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &n, nil
}

// List returns one page of the user's notifications, newest first, plus
// the total count for pagination.
func (s *Service) List(ctx context.Context, userID uint, page, size int) ([]database.Notification, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).
		Model(&database.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	var items []database.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return items, total, nil
}

// ListUnread returns every unread notification, newest first.
func (s *Service) ListUnread(ctx context.Context, userID uint) ([]database.Notification, error) {
	var items []database.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return items, nil
}

// CountUnread returns the number of unread notifications.
func (s *Service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&database.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// Get loads one notification by id.
func (s *Service) Get(ctx context.Context, id uint) (*database.Notification, error) {
	var n database.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead sets the read flag and timestamp in one update. Marking an
// already-read notification is a no-op that still succeeds, preserving
// the original ReadAt.
func (s *Service) MarkRead(ctx context.Context, id uint) (*database.Notification, error) {
	var n database.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	if n.IsRead {
		return &n, nil
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).
		Model(&n).
		Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	n.IsRead = true
	n.ReadAt = &now
	return &n, nil
}

// MarkAllRead marks every unread notification for the user in one bulk
// update and returns the number of rows affected.
func (s *Service) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&database.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return 0, fmt.Errorf("mark all read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes a single notification by id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&database.Notification{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CleanupOlderThan removes notifications created before the retention
// threshold and returns the number removed.
func (s *Service) CleanupOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&database.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup notifications: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// NotifyApplicationSubmitted tells the applicant the submission arrived.
func (s *Service) NotifyApplicationSubmitted(ctx context.Context, userID uint, company, position string, applicationID uint) error {
	title := "지원서 접수 완료"
	message := fmt.Sprintf("%s %s 지원서가 접수되었습니다.", company, position)
	_, err := s.CreateWithAction(ctx, userID, title, message, database.NotifyApplicationStatus,
		fmt.Sprintf("/dashboard/applications/%d", applicationID), applicationID)
	return err
}

// NotifyApplicationStatusChange tells the applicant the review status
// moved, using the human-readable status description.
func (s *Service) NotifyApplicationStatusChange(ctx context.Context, userID uint, company, position string, newStatus database.ApplicationStatus, applicationID uint) error {
	title := "지원서 상태 변경"
	message := fmt.Sprintf("%s %s 지원서 상태가 '%s'로 변경되었습니다.", company, position, newStatus.Description())
	_, err := s.CreateWithAction(ctx, userID, title, message, database.NotifyApplicationStatus,
		fmt.Sprintf("/dashboard/applications/%d", applicationID), applicationID)
	return err
}

// NotifyNewJobPosting announces a fresh posting.
func (s *Service) NotifyNewJobPosting(ctx context.Context, userID uint, companyName, jobTitle string) error {
	title := "새로운 채용공고"
	message := fmt.Sprintf("%s에서 '%s' 포지션 채용공고가 등록되었습니다.", companyName, jobTitle)
	_, err := s.Create(ctx, userID, title, message, database.NotifyNewJob)
	return err
}

// NotifyInterviewScheduled announces an interview date.
func (s *Service) NotifyInterviewScheduled(ctx context.Context, userID uint, company, position, interviewDate string) error {
	title := "면접 일정 안내"
	message := fmt.Sprintf("%s %s 포지션 면접이 %s에 예정되어 있습니다.", company, position, interviewDate)
	_, err := s.Create(ctx, userID, title, message, database.NotifyInterviewScheduled)
	return err
}
