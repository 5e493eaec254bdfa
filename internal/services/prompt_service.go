// Package services – PromptService
//
// This file implements PromptService, the application-level component that
// owns the prompt library: adding prompts (optionally deduplicated by an
// idempotency key), browsing by category, paginated listing, text search,
// and upvoting. It validates and normalizes inputs,
// delegates persistence to the repo layer, and applies the access-layer
// error contract (read faults degrade to empty results, write faults are
// re-signaled as generic failures).
//
// Search is performed in application code: candidates are pulled in store
// iteration order and matched with Unicode case folding against title,
// content, and every tag. Result order is therefore iteration order, not
// relevance or recency.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
	"github.com/promptkeep/go-prompt-backend/internal/repo"
	"github.com/promptkeep/go-prompt-backend/internal/search"
)

// defaultCategory is stored when a prompt is submitted without one.
// repo.CategoryAll is reserved as the "no filter" sentinel and is never
// stored.
const defaultCategory = "general"

// defaultDedupTTL bounds how long an Idempotency-Key replays the original
// result when the service is configured without an explicit window.
const defaultDedupTTL = 24 * time.Hour

// PromptService coordinates prompt persistence, browsing, and search.
type PromptService struct {
	// DB is the store handle; nil marks the store unavailable.
	DB *gorm.DB

	// Optional guards
	MaxTitleRunes   int
	MaxContentRunes int

	// DedupTTL is the replay window for idempotent submissions
	// (defaultDedupTTL when zero).
	DedupTTL time.Duration
}

// prepare validates a submitted prompt and returns the record as it will be
// stored: trimmed title and content, category defaulted to "general" when
// absent (or when it names the reserved "all" filter), id and vote count
// cleared for the storage engine.
func (s *PromptService) prepare(p domain.Prompt) (domain.Prompt, error) {
	p.Title = search.Normalize(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	if p.Title == "" || p.Content == "" {
		return p, ErrEmptyPrompt
	}
	if s.MaxTitleRunes > 0 && utf8.RuneCountInString(p.Title) > s.MaxTitleRunes {
		return p, ErrTooLong
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(p.Content) > s.MaxContentRunes {
		return p, ErrTooLong
	}
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" || p.Category == repo.CategoryAll {
		p.Category = defaultCategory
	}
	p.ID = 0      // id is assigned by the storage engine
	p.Upvotes = 0 // new prompts start unvoted
	return p, nil
}

// Add validates and inserts a prompt, returning the engine-assigned id as
// decimal text.
//
// Fallbacks:
//   - store unavailable: ("", ErrStoreUnavailable)
//   - insert fault: ("", ErrAddPrompt), cause logged only
func (s *PromptService) Add(ctx context.Context, p domain.Prompt) (string, error) {
	if s.DB == nil {
		return "", ErrStoreUnavailable
	}
	p, err := s.prepare(p)
	if err != nil {
		return "", err
	}
	created, err := repo.CreatePrompt(ctx, s.DB, &p)
	if err != nil {
		log.Error().Err(err).Msg("prompt insert failed")
		return "", ErrAddPrompt
	}
	return strconv.FormatUint(uint64(created.ID), 10), nil
}

// AddIdempotent behaves like Add but deduplicates retries: when the same
// author resubmits with the key of a submission that already completed
// inside the replay window, the originally assigned id is returned (replayed
// true) and no second prompt is stored. An empty key falls back to plain
// Add.
//
// Lookup, insert, and key claim run in one transaction; the unique index on
// (user_id, key) serializes concurrent retries, and the loser re-reads the
// winner's id after rollback.
func (s *PromptService) AddIdempotent(ctx context.Context, p domain.Prompt, key string) (id string, replayed bool, err error) {
	if key == "" {
		id, err = s.Add(ctx, p)
		return id, false, err
	}
	if s.DB == nil {
		return "", false, ErrStoreUnavailable
	}
	p, err = s.prepare(p)
	if err != nil {
		return "", false, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		rec, err := repo.GetIdempotencyKey(ctx, tx, p.UserID, key, now)
		if err == nil {
			id, replayed = rec.PromptID, true
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		if n, err := repo.PurgeExpiredIdempotencyKeys(ctx, tx, now); err != nil {
			return err
		} else if n > 0 {
			log.Debug().Int64("purged", n).Msg("expired idempotency keys removed")
		}
		created, err := repo.CreatePrompt(ctx, tx, &p)
		if err != nil {
			return err
		}
		id = strconv.FormatUint(uint64(created.ID), 10)
		_, err = repo.CreateIdempotencyKey(ctx, tx, p.UserID, key, id, s.dedupTTL())
		return err
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// A concurrent retry claimed the key first; its row has the id.
			if rec, gerr := repo.GetIdempotencyKey(ctx, s.DB, p.UserID, key, time.Now().UTC()); gerr == nil {
				return rec.PromptID, true, nil
			}
		}
		log.Error().Err(err).Msg("prompt insert failed")
		return "", false, ErrAddPrompt
	}
	return id, replayed, nil
}

func (s *PromptService) dedupTTL() time.Duration {
	if s.DedupTTL > 0 {
		return s.DedupTTL
	}
	return defaultDedupTTL
}

// List returns prompts ordered by creation time descending, optionally
// filtered to a category ("" and "all" mean no filter).
//
// Fallbacks:
//   - store unavailable: (empty, ErrStoreUnavailable)
//   - query fault: (empty, nil), fault logged only
func (s *PromptService) List(ctx context.Context, category string) ([]domain.Prompt, error) {
	if s.DB == nil {
		return []domain.Prompt{}, ErrStoreUnavailable
	}
	list, err := repo.ListPrompts(ctx, s.DB, strings.TrimSpace(category))
	if err != nil {
		log.Warn().Err(err).Msg("prompt list query failed")
		return []domain.Prompt{}, nil
	}
	if list == nil {
		list = []domain.Prompt{}
	}
	return list, nil
}

// ListPage returns a page of prompts plus the total count for pagination
// metadata. Unlike the plain access-layer reads, pagination propagates DB
// errors so the HTTP layer can answer 500 instead of a silently empty page.
func (s *PromptService) ListPage(ctx context.Context, category string, page, pageSize int) ([]domain.Prompt, int64, error) {
	if s.DB == nil {
		return nil, 0, ErrStoreUnavailable
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	category = strings.TrimSpace(category)

	total, err := repo.CountPrompts(ctx, s.DB, category)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Prompt{}, 0, nil
	}
	items, err := repo.ListPromptsPage(ctx, s.DB, category, offset, pageSize)
	return items, total, err
}

// Upvote increments the stored upvote count of the prompt identified by the
// textual id by exactly one. A missing prompt (or an unparseable id) is a
// no-op, not a fault.
//
// Fallbacks:
//   - store unavailable: ErrStoreUnavailable
//   - update fault: ErrUpvotePrompt, cause logged only
func (s *PromptService) Upvote(ctx context.Context, id string) error {
	if s.DB == nil {
		return ErrStoreUnavailable
	}
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil {
		// Ids are engine-assigned decimals; anything else cannot exist.
		return nil
	}
	updated, err := repo.IncrementUpvotes(ctx, s.DB, uint(n))
	if err != nil {
		log.Error().Err(err).Str("prompt_id", id).Msg("prompt upvote failed")
		return ErrUpvotePrompt
	}
	if !updated {
		log.Debug().Str("prompt_id", id).Msg("upvote on missing prompt ignored")
	}
	return nil
}

// Search returns every prompt whose title, content, or any tag contains the
// query, caselessly. Results follow store iteration order. An empty query
// matches everything.
//
// Fallbacks:
//   - store unavailable: (empty, ErrStoreUnavailable)
//   - query fault: (empty, nil), fault logged only
func (s *PromptService) Search(ctx context.Context, query string) ([]domain.Prompt, error) {
	if s.DB == nil {
		return []domain.Prompt{}, ErrStoreUnavailable
	}
	query = search.Normalize(query)

	all, err := repo.AllPrompts(ctx, s.DB)
	if err != nil {
		log.Warn().Err(err).Msg("prompt search query failed")
		return []domain.Prompt{}, nil
	}

	out := make([]domain.Prompt, 0, len(all))
	for _, p := range all {
		fields := make([]string, 0, 2+len(p.Tags))
		fields = append(fields, p.Title, p.Content)
		fields = append(fields, p.Tags...)
		if search.MatchesAny(query, fields...) {
			out = append(out, p)
		}
	}
	return out, nil
}
