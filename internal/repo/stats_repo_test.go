package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
)

func TestGetUserStats_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.UserStats{}, &domain.Achievement{})
	if _, err := GetUserStats(context.Background(), db, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserStats_SeedsAchievements(t *testing.T) {
	db := newRepoDB(t, &domain.UserStats{}, &domain.Achievement{})

	seed := []domain.Achievement{
		{Name: "First Steps", Description: "Send your first message", Icon: "chat", Category: domain.AchievementUsage, Requirement: 1},
		{Name: "Regular", Description: "Log in 7 times", Icon: "calendar", Category: domain.AchievementUsage, Requirement: 7},
	}
	st, err := CreateUserStats(context.Background(), db, "u1", seed)
	if err != nil {
		t.Fatalf("CreateUserStats: %v", err)
	}
	if st.ID == "" || st.UserID != "u1" {
		t.Fatalf("unexpected aggregate: %+v", st)
	}

	got, err := GetUserStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if len(got.Achievements) != 2 {
		t.Fatalf("expected 2 seeded achievements, got %d", len(got.Achievements))
	}
	for _, a := range got.Achievements {
		if a.ID == "" || a.UserStatsID != st.ID {
			t.Fatalf("achievement not linked: %+v", a)
		}
		if a.Unlocked || a.Progress != 0 {
			t.Fatalf("seeded achievement should start locked with zero progress: %+v", a)
		}
	}

	// One aggregate per user.
	if _, err := CreateUserStats(context.Background(), db, "u1", nil); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for second aggregate, got %v", err)
	}
}

func TestIncrementCounter(t *testing.T) {
	db := newRepoDB(t, &domain.UserStats{}, &domain.Achievement{})
	if _, err := CreateUserStats(context.Background(), db, "u1", nil); err != nil {
		t.Fatalf("CreateUserStats: %v", err)
	}

	if err := IncrementCounter(context.Background(), db, "u1", "message_count", 1); err != nil {
		t.Fatalf("IncrementCounter: %v", err)
	}
	if err := IncrementCounter(context.Background(), db, "u1", "message_count", 2); err != nil {
		t.Fatalf("IncrementCounter: %v", err)
	}
	if err := IncrementCounter(context.Background(), db, "u1", "share_count", 1); err != nil {
		t.Fatalf("IncrementCounter(share): %v", err)
	}

	st, err := GetUserStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if st.MessageCount != 3 || st.ShareCount != 1 || st.LoginCount != 0 {
		t.Fatalf("unexpected counters: %+v", st)
	}

	// Unknown column rejected.
	if err := IncrementCounter(context.Background(), db, "u1", "upvotes", 1); err == nil {
		t.Fatalf("expected error for unknown counter column")
	}
	// Missing user.
	if err := IncrementCounter(context.Background(), db, "ghost", "message_count", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTouchLastLogin(t *testing.T) {
	db := newRepoDB(t, &domain.UserStats{}, &domain.Achievement{})
	if _, err := CreateUserStats(context.Background(), db, "u1", nil); err != nil {
		t.Fatalf("CreateUserStats: %v", err)
	}

	start := time.Now().UTC().Add(-time.Minute)
	if err := TouchLastLogin(context.Background(), db, "u1"); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}
	st, err := GetUserStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if st.LastLoginAt == nil || st.LastLoginAt.Before(start) {
		t.Fatalf("LastLoginAt not stamped: %+v", st.LastLoginAt)
	}

	if err := TouchLastLogin(context.Background(), db, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAchievement(t *testing.T) {
	db := newRepoDB(t, &domain.UserStats{}, &domain.Achievement{})
	st, err := CreateUserStats(context.Background(), db, "u1", []domain.Achievement{
		{Name: "First Steps", Description: "Send your first message", Category: domain.AchievementUsage, Requirement: 1},
	})
	if err != nil {
		t.Fatalf("CreateUserStats: %v", err)
	}

	a := st.Achievements[0]
	now := time.Now().UTC()
	a.Progress = 1
	a.Unlocked = true
	a.UnlockedAt = &now
	if err := UpdateAchievement(context.Background(), db, &a); err != nil {
		t.Fatalf("UpdateAchievement: %v", err)
	}

	got, err := GetUserStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	ga := got.Achievements[0]
	if !ga.Unlocked || ga.Progress != 1 || ga.UnlockedAt == nil {
		t.Fatalf("achievement not updated: %+v", ga)
	}
}
