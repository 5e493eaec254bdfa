// Package services – StatsService
//
// This file implements StatsService, which maintains the per-user aggregate
// of usage counters and its achievement rows. The aggregate is seeded with a
// default achievement set on first access; counter updates advance the
// progress of the matching achievement category and flip the unlocked flag
// (stamping the unlock time) exactly once when the requirement is met.
//
// Counter/category mapping:
//   - messages -> "usage"        (message_count)
//   - logins   -> "performance"  (login_count)
//   - shares   -> "social"       (share_count)
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
	"github.com/promptkeep/go-prompt-backend/internal/repo"
)

// StatsService owns the UserStats aggregate lifecycle.
type StatsService struct {
	// DB is the store handle; nil marks the store unavailable.
	DB *gorm.DB
}

// defaultAchievements is the seed set written when a user's aggregate is
// first created. All start locked with zero progress.
func defaultAchievements() []domain.Achievement {
	return []domain.Achievement{
		{Name: "First Steps", Description: "Send your first message", Icon: "chat", Category: domain.AchievementUsage, Requirement: 1},
		{Name: "Conversationalist", Description: "Send 50 messages", Icon: "chats", Category: domain.AchievementUsage, Requirement: 50},
		{Name: "Regular", Description: "Log in 7 times", Icon: "calendar", Category: domain.AchievementPerformance, Requirement: 7},
		{Name: "Dedicated", Description: "Log in 30 times", Icon: "trophy", Category: domain.AchievementPerformance, Requirement: 30},
		{Name: "Sharer", Description: "Share a prompt", Icon: "share", Category: domain.AchievementSocial, Requirement: 1},
	}
}

// Get returns the stats aggregate for userID, creating and seeding it on
// first access. When the store is unavailable it returns
// (nil, ErrStoreUnavailable).
func (s *StatsService) Get(ctx context.Context, userID string) (*domain.UserStats, error) {
	if s.DB == nil {
		return nil, ErrStoreUnavailable
	}
	st, err := repo.GetUserStats(ctx, s.DB, userID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	st, err = repo.CreateUserStats(ctx, s.DB, userID, defaultAchievements())
	if errors.Is(err, repo.ErrDuplicate) {
		// Lost a seeding race; the other writer's row is authoritative.
		return repo.GetUserStats(ctx, s.DB, userID)
	}
	return st, err
}

// RecordLogin increments the login counter, stamps the last login time, and
// advances performance achievements.
func (s *StatsService) RecordLogin(ctx context.Context, userID string) (*domain.UserStats, error) {
	return s.bump(ctx, userID, "login_count", domain.AchievementPerformance, true)
}

// RecordMessage increments the message counter and advances usage
// achievements.
func (s *StatsService) RecordMessage(ctx context.Context, userID string) (*domain.UserStats, error) {
	return s.bump(ctx, userID, "message_count", domain.AchievementUsage, false)
}

// RecordShare increments the share counter and advances social achievements.
func (s *StatsService) RecordShare(ctx context.Context, userID string) (*domain.UserStats, error) {
	return s.bump(ctx, userID, "share_count", domain.AchievementSocial, false)
}

// bump ensures the aggregate exists, adds one to the given counter, advances
// achievements of the matching category, and returns the refreshed
// aggregate. The whole step runs in one transaction.
func (s *StatsService) bump(ctx context.Context, userID, column, category string, touchLogin bool) (*domain.UserStats, error) {
	if s.DB == nil {
		return nil, ErrStoreUnavailable
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.IncrementCounter(ctx, tx, userID, column, 1); err != nil {
			return err
		}
		if touchLogin {
			if err := repo.TouchLastLogin(ctx, tx, userID); err != nil {
				return err
			}
		}
		st, err := repo.GetUserStats(ctx, tx, userID)
		if err != nil {
			return err
		}
		value := counterValue(st, column)
		for i := range st.Achievements {
			a := &st.Achievements[i]
			if a.Category != category || a.Unlocked {
				continue
			}
			progress := value
			if progress > a.Requirement {
				progress = a.Requirement
			}
			if progress == a.Progress {
				continue
			}
			a.Progress = progress
			if a.Progress >= a.Requirement {
				a.Unlocked = true
				now := time.Now().UTC()
				a.UnlockedAt = &now
			}
			if err := repo.UpdateAchievement(ctx, tx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repo.GetUserStats(ctx, s.DB, userID)
}

// counterValue reads the counter column that was just incremented.
func counterValue(st *domain.UserStats, column string) int {
	switch column {
	case "message_count":
		return st.MessageCount
	case "login_count":
		return st.LoginCount
	case "token_count":
		return st.TokenCount
	case "share_count":
		return st.ShareCount
	}
	return 0
}
