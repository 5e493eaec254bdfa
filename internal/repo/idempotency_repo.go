// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// IdempotencyKey model, which backs replay detection for prompt creation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
)

// GetIdempotencyKey returns the unexpired record for (userID, key), or
// ErrNotFound when none exists or the stored one has expired.
func GetIdempotencyKey(ctx context.Context, db *gorm.DB, userID, key string, now time.Time) (*domain.IdempotencyKey, error) {
	var rec domain.IdempotencyKey
	err := db.WithContext(ctx).
		Where("user_id = ? AND key = ? AND expires_at > ?", userID, key, now).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotencyKey claims (userID, key) for the prompt identified by
// promptID, valid for ttl. The unique index on (user_id, key) rejects a
// second claim, which is mapped to ErrDuplicate.
func CreateIdempotencyKey(ctx context.Context, db *gorm.DB, userID, key, promptID string, ttl time.Duration) (*domain.IdempotencyKey, error) {
	now := time.Now().UTC()
	rec := &domain.IdempotencyKey{
		ID:        uuid.NewString(),
		UserID:    userID,
		Key:       key,
		PromptID:  promptID,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// PurgeExpiredIdempotencyKeys deletes every record whose expiry has passed,
// returning the number of rows removed. It frees re-used keys after their
// TTL and keeps the table from growing without bound.
func PurgeExpiredIdempotencyKeys(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.IdempotencyKey{})
	return res.RowsAffected, res.Error
}
