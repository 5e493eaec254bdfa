// Package services – LicenseService
//
// This file implements the LicenseService, which governs the append-only
// license activation log. It answers "has this key been used", appends
// activation records, and returns the activation history. Uniqueness of
// license keys is enforced twice: the existence check and the insert run in
// one transaction, and the licenses table carries a unique index on the key
// column, so concurrent activations of the same key cannot both land.
//
// Error semantics follow the access-layer contract: read faults are logged
// and degraded to the documented fallback value; write faults are logged and
// re-signaled as a generic ErrSaveLicense so callers see only
// success/failure. A service constructed without a store handle returns
// ErrStoreUnavailable together with the fallback value.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
	"github.com/promptkeep/go-prompt-backend/internal/repo"
)

// LicenseService implements the use-cases around license activation records.
type LicenseService struct {
	// DB is the database handle used for all license operations. A nil
	// handle marks the store as unavailable (e.g. persistence disabled);
	// every operation then degrades to its fallback result.
	DB *gorm.DB
}

// IsUsed reports whether a license record with exactly the given key exists.
//
// Fallbacks:
//   - store unavailable: (false, ErrStoreUnavailable)
//   - query fault: (false, nil), fault logged only
func (s *LicenseService) IsUsed(ctx context.Context, key string) (bool, error) {
	if s.DB == nil {
		return false, ErrStoreUnavailable
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}
	used, err := repo.LicenseKeyExists(ctx, s.DB, key)
	if err != nil {
		log.Warn().Err(err).Msg("license existence check failed")
		return false, nil
	}
	return used, nil
}

// Save appends an activation record for (key, productID), stamped with the
// client-reported activation time at, or the current time when at is zero.
//
// The existence check and the insert run inside one transaction; a key that
// is already activated yields ErrDuplicateLicense whether it is caught by
// the check or by the unique index. Any other insert fault is logged and
// surfaced as ErrSaveLicense.
func (s *LicenseService) Save(ctx context.Context, key, productID string, at time.Time) error {
	if s.DB == nil {
		return ErrStoreUnavailable
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyLicenseKey
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := repo.LicenseKeyExists(ctx, tx, key)
		if err != nil {
			return err
		}
		if used {
			return ErrDuplicateLicense
		}
		_, err = repo.CreateLicense(ctx, tx, key, productID, at)
		return err
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateLicense) || errors.Is(err, repo.ErrDuplicate):
		return ErrDuplicateLicense
	default:
		log.Error().Err(err).Msg("license save failed")
		return ErrSaveLicense
	}
}

// History returns all activation records ordered by timestamp descending.
//
// Fallbacks:
//   - store unavailable: (empty, ErrStoreUnavailable)
//   - query fault: (empty, nil), fault logged only
func (s *LicenseService) History(ctx context.Context) ([]domain.LicenseRecord, error) {
	if s.DB == nil {
		return []domain.LicenseRecord{}, ErrStoreUnavailable
	}
	list, err := repo.ListLicenses(ctx, s.DB)
	if err != nil {
		log.Warn().Err(err).Msg("license history query failed")
		return []domain.LicenseRecord{}, nil
	}
	if list == nil {
		list = []domain.LicenseRecord{}
	}
	return list, nil
}
