package domain

import (
	"time"
)

// IdempotencyKey records a completed prompt submission keyed by the
// client-supplied Idempotency-Key header, so a retried POST replays the
// originally assigned prompt id instead of inserting a second row.
//
// The composite unique index on (UserID, Key) is what makes concurrent
// retries safe: only one transaction can claim a key, the others observe
// the winner's row. Rows expire after ExpiresAt and are purged lazily.
type IdempotencyKey struct {
	ID        string    `json:"id"         gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_idem_user_key,priority:1"`
	Key       string    `json:"key"        gorm:"type:varchar(200);not null;uniqueIndex:ux_idem_user_key,priority:2"`
	PromptID  string    `json:"prompt_id"  gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
}

// TableName returns the database table name for IdempotencyKey.
func (IdempotencyKey) TableName() string { return "idempotency_keys" }
