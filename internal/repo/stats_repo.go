// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the UserStats
// aggregate and its Achievement children. Each function is context-aware and
// safe to call from services or handlers.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
)

// GetUserStats loads the stats aggregate for userID, including its
// achievements. It returns ErrNotFound when no row exists yet.
func GetUserStats(ctx context.Context, db *gorm.DB, userID string) (*domain.UserStats, error) {
	var st domain.UserStats
	err := db.WithContext(ctx).
		Preload("Achievements").
		Where("user_id = ?", userID).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// CreateUserStats inserts a fresh aggregate for userID with zeroed counters
// and the given achievement seed. Achievement rows receive UUID primary keys
// and are linked to the aggregate.
func CreateUserStats(ctx context.Context, db *gorm.DB, userID string, seed []domain.Achievement) (*domain.UserStats, error) {
	now := time.Now().UTC()
	st := &domain.UserStats{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range seed {
		seed[i].ID = uuid.NewString()
		seed[i].UserStatsID = st.ID
	}
	st.Achievements = seed
	if err := db.WithContext(ctx).Create(st).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return st, nil
}

// IncrementCounter adds delta to one of the aggregate's counter columns.
// Allowed columns: message_count, login_count, token_count, share_count.
// Returns ErrNotFound when the user has no stats row.
func IncrementCounter(ctx context.Context, db *gorm.DB, userID, column string, delta int) error {
	switch column {
	case "message_count", "login_count", "token_count", "share_count":
	default:
		return errors.New("unknown counter column: " + column)
	}
	res := db.WithContext(ctx).
		Model(&domain.UserStats{}).
		Where("user_id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin stamps last_login_at with the current UTC time.
// Returns ErrNotFound when the user has no stats row.
func TouchLastLogin(ctx context.Context, db *gorm.DB, userID string) error {
	res := db.WithContext(ctx).
		Model(&domain.UserStats{}).
		Where("user_id = ?", userID).
		Update("last_login_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAchievement writes back progress and unlock state for a single
// achievement row. UnlockedAt is only ever set, never cleared.
func UpdateAchievement(ctx context.Context, db *gorm.DB, a *domain.Achievement) error {
	return db.WithContext(ctx).
		Model(&domain.Achievement{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"progress":    a.Progress,
			"unlocked":    a.Unlocked,
			"unlocked_at": a.UnlockedAt,
		}).Error
}
