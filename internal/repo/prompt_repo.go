// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Prompt model.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "all"

// CreatePrompt inserts a new prompt row and returns it with the
// engine-assigned auto-increment id populated.
func CreatePrompt(ctx context.Context, db *gorm.DB, p *domain.Prompt) (*domain.Prompt, error) {
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPrompts returns prompts ordered by creation time descending. When
// category is non-empty and not CategoryAll the result is filtered to that
// category first.
func ListPrompts(ctx context.Context, db *gorm.DB, category string) ([]domain.Prompt, error) {
	var out []domain.Prompt
	q := db.WithContext(ctx).Order("created_at desc, id desc")
	if category != "" && category != CategoryAll {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountPrompts returns the total number of prompts, optionally scoped to a
// category. On DB error, it returns the error.
func CountPrompts(ctx context.Context, db *gorm.DB, category string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.Prompt{})
	if category != "" && category != CategoryAll {
		q = q.Where("category = ?", category)
	}
	err := q.Count(&total).Error
	return total, err
}

// ListPromptsPage returns a paginated slice ordered by creation time
// descending. Use CountPrompts to obtain the total for pagination metadata.
func ListPromptsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Prompt, error) {
	var out []domain.Prompt
	q := db.WithContext(ctx).Order("created_at desc, id desc")
	if category != "" && category != CategoryAll {
		q = q.Where("category = ?", category)
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// AllPrompts returns every prompt in store iteration order (primary key).
// Used by text search, which matches in application code.
func AllPrompts(ctx context.Context, db *gorm.DB) ([]domain.Prompt, error) {
	var out []domain.Prompt
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// GetPrompt fetches a prompt by id, returning ErrNotFound when missing.
func GetPrompt(ctx context.Context, db *gorm.DB, id uint) (*domain.Prompt, error) {
	var p domain.Prompt
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementUpvotes reads the current upvote count for id and writes back
// count+1. A missing prompt is reported via the returned bool (false) rather
// than an error; the caller decides whether that is a fault.
func IncrementUpvotes(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	updated := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Prompt
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Model(&domain.Prompt{}).
			Where("id = ?", id).
			Update("upvotes", p.Upvotes+1).Error; err != nil {
			return err
		}
		updated = true
		return nil
	})
	return updated, err
}
