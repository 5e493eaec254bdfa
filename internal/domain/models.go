// Package domain defines the persistence models for prompts, license
// activations, and gamified usage statistics. These types are mapped with
// GORM and form the core data layer of the prompt-store application.
package domain

import (
	"time"
)

// Prompt represents a user-authored prompt that can be browsed by category,
// searched by text, and upvoted by other users.
//
// Fields:
//   - ID: auto-increment primary key assigned by the storage engine. The
//     access layer renders it as decimal text for API consumers.
//   - Title / Content: the prompt itself.
//   - Category: free-form grouping label (e.g. "work", "creative").
//   - Tags: list of labels, serialized as JSON text in SQLite so they remain
//     visible to substring search.
//   - Upvotes: monotonically increasing counter, mutated only by the upvote
//     operation.
//   - UserID: identifier of the author; indexed for per-user retrieval.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Prompt struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null;index"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	Category  string    `json:"category"   gorm:"type:varchar(64);not null;index"`
	Tags      []string  `json:"tags"       gorm:"serializer:json"`
	Upvotes   int       `json:"upvotes"    gorm:"not null;default:0"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Prompt.
func (Prompt) TableName() string { return "prompts" }

// LicenseRecord is an append-only log entry marking a product license key as
// activated. Records are never updated or deleted by the access layer.
//
// The unique index on LicenseKey is the storage-level guarantee behind the
// "is this key used" check; the application-level existence check alone
// would race under concurrent activations.
type LicenseRecord struct {
	ID         uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	LicenseKey string    `json:"license_key" gorm:"type:varchar(128);not null;uniqueIndex:ux_license_key"`
	ProductID  string    `json:"product_id"  gorm:"type:varchar(64);not null;index"`
	Timestamp  time.Time `json:"timestamp"   gorm:"not null;index"`
}

// TableName returns the database table name for LicenseRecord.
func (LicenseRecord) TableName() string { return "licenses" }

// Achievement categories.
const (
	AchievementUsage       = "usage"
	AchievementPerformance = "performance"
	AchievementSocial      = "social"
)

// Achievement tracks progress toward a usage/performance/social milestone.
// Rows belong to a UserStats aggregate and are loaded with it.
type Achievement struct {
	ID          string     `json:"id"          gorm:"type:char(36);primaryKey"`
	UserStatsID string     `json:"-"           gorm:"type:char(36);not null;index"`
	Name        string     `json:"name"        gorm:"type:varchar(128);not null"`
	Description string     `json:"description" gorm:"type:varchar(255);not null"`
	Icon        string     `json:"icon"        gorm:"type:varchar(64)"`
	Category    string     `json:"category"    gorm:"type:varchar(16);not null;check:category IN ('usage','performance','social')"`
	Requirement int        `json:"requirement" gorm:"not null"`
	Progress    int        `json:"progress"    gorm:"not null;default:0"`
	Unlocked    bool       `json:"unlocked"    gorm:"not null;default:false"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// TableName returns the database table name for Achievement.
func (Achievement) TableName() string { return "achievements" }

// UserStats is the per-user aggregate of usage counters and achievements.
// Exactly one row exists per user; it is seeded on first access.
type UserStats struct {
	ID           string        `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID       string        `json:"user_id"        gorm:"type:varchar(64);not null;uniqueIndex:ux_stats_user"`
	MessageCount int           `json:"message_count"  gorm:"not null;default:0"`
	LoginCount   int           `json:"login_count"    gorm:"not null;default:0"`
	TokenCount   int           `json:"token_count"    gorm:"not null;default:0"`
	ShareCount   int           `json:"share_count"    gorm:"not null;default:0"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Achievements []Achievement `json:"achievements" gorm:"foreignKey:UserStatsID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserStats.
func (UserStats) TableName() string { return "user_stats" }

// Message sender values.
const (
	SenderUser   = "user"
	SenderSystem = "system"
)

// Message is a transient chat turn exchanged between the user and the
// system. It is part of API payloads only and is never persisted by this
// layer.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "user" or "system"
	Timestamp time.Time `json:"timestamp"`
}
