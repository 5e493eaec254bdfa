// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// LicenseRecord model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - LicenseKeyExists never treats "no rows" as an error; it reports false.
//   - CreateLicense returns ErrDuplicate when the unique index on
//     license_key rejects the insert.
//   - On other DB errors (connectivity, missing table, etc.) the raw gorm
//     error is propagated.
//
// The licenses table is an append-only activation log: no update or delete
// functions exist by design.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that a row violating a unique constraint was
// rejected by the storage engine.
var ErrDuplicate = errors.New("duplicate")

// LicenseKeyExists reports whether a license record with exactly the given
// key has been persisted. On DB error, it returns false and the error.
func LicenseKeyExists(ctx context.Context, db *gorm.DB, key string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.LicenseRecord{}).
		Where("license_key = ?", key).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// CreateLicense appends an activation record for (key, productID) stamped
// with at, normalized to UTC; a zero at means "now". The row id is assigned
// by the storage engine. A duplicate key is mapped to ErrDuplicate; other
// DB errors are returned as-is.
func CreateLicense(ctx context.Context, db *gorm.DB, key, productID string, at time.Time) (*domain.LicenseRecord, error) {
	if at.IsZero() {
		at = time.Now()
	}
	rec := &domain.LicenseRecord{
		LicenseKey: key,
		ProductID:  productID,
		Timestamp:  at.UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// ListLicenses returns the full activation log ordered by timestamp
// descending (most recent first). It returns an empty slice when no
// activations have been recorded. On DB error, it returns the error.
func ListLicenses(ctx context.Context, db *gorm.DB) ([]domain.LicenseRecord, error) {
	var out []domain.LicenseRecord
	err := db.WithContext(ctx).
		Order("timestamp desc").
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
