// Package auth resolves Kakao identities into local accounts and
// manages the session tokens issued afterwards.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gamecraft/internal/database"
)

const blacklistKeyPrefix = "auth:blacklist:"

// Service owns identity resolution and logout state.
type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	Tokens *TokenService
	Kakao  *KakaoClient
}

func NewService(db *gorm.DB, rdb *redis.Client, tokens *TokenService, kakao *KakaoClient) *Service {
	return &Service{db: db, redis: rdb, Tokens: tokens, Kakao: kakao}
}

// ProcessKakaoUser resolves a Kakao profile into a local account with a
// single atomic upsert keyed on kakao_id. First sight creates the
// account as USER/ACTIVE; later logins refresh name, email and avatar.
// Concurrent first logins for the same kakao_id converge on one row.
func (s *Service) ProcessKakaoUser(ctx context.Context, profile *KakaoProfile) (*database.User, error) {
	email := profile.Email
	if email == "" {
		// Kakao may withhold the email scope; keep the column unique.
		email = profile.KakaoID + "@kakao.temp"
	}
	name := profile.Nickname
	if name == "" {
		name = "카카오 사용자"
	}

	user := database.User{
		KakaoID:      profile.KakaoID,
		Name:         name,
		Email:        email,
		ProfileImage: profile.ProfileImage,
		Role:         database.RoleUser,
		Status:       database.UserStatusActive,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kakao_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "profile_image", "updated_at"}),
		}).
		Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("upsert kakao user: %w", err)
	}

	// Reload so role/status reflect the stored row, not the template.
	var stored database.User
	if err := s.db.WithContext(ctx).Where("kakao_id = ?", profile.KakaoID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("load upserted user: %w", err)
	}
	return &stored, nil
}

// GetUser loads an account by id.
func (s *Service) GetUser(ctx context.Context, id uint) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// PromoteToAdmin flips the account role. Development helper.
func (s *Service) PromoteToAdmin(ctx context.Context, id uint) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("role", database.RoleAdmin).Error; err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}
	user.Role = database.RoleAdmin
	return &user, nil
}

// Logout blacklists the raw token until it would have expired.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.Tokens.Validate(rawToken)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKeyPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether a token id was revoked by logout. A
// redis outage fails open so valid sessions keep working.
func (s *Service) IsBlacklisted(ctx context.Context, tokenID string) bool {
	if s.redis == nil || tokenID == "" {
		return false
	}
	n, err := s.redis.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
