// Prompt HTTP handlers.
//
// This file exposes REST endpoints for the prompt library:
//   - POST /prompts             (add)
//   - GET  /prompts             (list by category, optionally paginated)
//   - GET  /prompts/search      (caseless text search)
//   - POST /prompts/{id}/upvote (increment upvote count)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results (and service sentinels) into HTTP
// responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
	"github.com/promptkeep/go-prompt-backend/internal/http/middleware"
	"github.com/promptkeep/go-prompt-backend/internal/services"
	"github.com/promptkeep/go-prompt-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// PromptService defines the prompt-library operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PromptService interface {
	// Add validates and stores a prompt, returning its id as decimal text.
	Add(ctx context.Context, p domain.Prompt) (string, error)
	// AddIdempotent stores a prompt once per (author, key); a retry within
	// the replay window returns the original id with replayed true.
	AddIdempotent(ctx context.Context, p domain.Prompt, key string) (id string, replayed bool, err error)
	// List returns prompts newest-first, optionally filtered by category.
	List(ctx context.Context, category string) ([]domain.Prompt, error)
	// ListPage returns a page of prompts and the total count.
	ListPage(ctx context.Context, category string, page, pageSize int) ([]domain.Prompt, int64, error)
	// Upvote increments the upvote count of the identified prompt.
	Upvote(ctx context.Context, id string) error
	// Search returns prompts whose title, content, or tags match the query.
	Search(ctx context.Context, query string) ([]domain.Prompt, error)
}

// LicenseService defines the license-activation operations consumed by HTTP
// handlers.
type LicenseService interface {
	// IsUsed reports whether an activation record exists for key.
	IsUsed(ctx context.Context, key string) (bool, error)
	// Save appends an activation record for (key, productID) stamped with
	// at (zero means "now").
	Save(ctx context.Context, key, productID string, at time.Time) error
	// History returns all activation records, newest first.
	History(ctx context.Context) ([]domain.LicenseRecord, error)
}

// StatsService defines the usage-statistics operations consumed by HTTP
// handlers.
type StatsService interface {
	// Get returns the stats aggregate for userID, seeding it on first access.
	Get(ctx context.Context, userID string) (*domain.UserStats, error)
	// RecordLogin increments the login counter and stamps last login.
	RecordLogin(ctx context.Context, userID string) (*domain.UserStats, error)
	// RecordMessage increments the message counter.
	RecordMessage(ctx context.Context, userID string) (*domain.UserStats, error)
	// RecordShare increments the share counter.
	RecordShare(ctx context.Context, userID string) (*domain.UserStats, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for prompts, licenses, and stats.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	promptSvc  PromptService
	licenseSvc LicenseService
	statsSvc   StatsService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(promptSvc PromptService, licenseSvc LicenseService, statsSvc StatsService) *Handlers {
	return &Handlers{promptSvc: promptSvc, licenseSvc: licenseSvc, statsSvc: statsSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// AddPromptRequest is the JSON payload for adding a prompt.
type AddPromptRequest struct {
	// Title names the prompt (1-255 chars after trimming).
	Title string `json:"title" binding:"required"`
	// Content is the prompt body.
	Content string `json:"content" binding:"required"`
	// Category optionally buckets the prompt; defaults to "general".
	Category string `json:"category"`
	// Tags are free-form labels used by search.
	Tags []string `json:"tags"`
}

// AddPromptResponse carries the id assigned to a newly stored prompt.
type AddPromptResponse struct {
	ID string `json:"id"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListPromptsResponse wraps a page of prompts and pagination information.
type ListPromptsResponse struct {
	Prompts    []domain.Prompt `json:"prompts"`
	Pagination Pagination      `json:"pagination"`
}

// SearchPromptsResponse wraps search results.
type SearchPromptsResponse struct {
	Prompts []domain.Prompt `json:"prompts"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	return utils.ClampPage(page, pageSize, defaultPageSize, maxPageSize)
}

// failService maps the cross-cutting service sentinels to HTTP responses and
// reports whether err was handled. Handlers deal with their own
// endpoint-specific sentinels first and call this for the remainder.
func failService(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, services.ErrStoreUnavailable):
		fail(c, http.StatusServiceUnavailable, ErrCodeStoreUnavailable, "persistent store unavailable")
		return true
	default:
		return false
	}
}

//
// Handlers
//

// AddPrompt stores a new prompt and returns its assigned id. A request
// carrying an Idempotency-Key header is deduplicated per author: retrying
// it within the replay window answers 201 again with the id assigned the
// first time, without storing a second prompt.
//
// POST /prompts -> 201 {"id": "<text>"}
func (h *Handlers) AddPrompt(c *gin.Context) {
	var req AddPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and content are required")
		return
	}

	id, replayed, err := h.promptSvc.AddIdempotent(c.Request.Context(), domain.Prompt{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		UserID:   userID(c),
	}, middleware.GetIdempotencyKey(c))
	if err != nil {
		switch {
		case failService(c, err):
		case errors.Is(err, services.ErrEmptyPrompt):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and content must be non-empty")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title or content exceeds the maximum length")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "failed to add prompt")
		}
		return
	}
	if replayed {
		c.Header("Idempotency-Replayed", "true")
	}
	ok(c, http.StatusCreated, AddPromptResponse{ID: id})
}

// ListPrompts returns prompts newest-first, optionally filtered by category.
//
// GET /prompts?category=&page=&page_size=
//
// Without pagination params the full (category-filtered) list is returned
// as a single page; with them, the usual page/total envelope.
func (h *Handlers) ListPrompts(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	if c.Query("page") == "" && c.Query("page_size") == "" {
		items, err := h.promptSvc.List(ctx, category)
		if err != nil {
			if !failService(c, err) {
				fail(c, http.StatusInternalServerError, ErrCodeListFailed, "failed to list prompts")
			}
			return
		}
		ok(c, http.StatusOK, ListPromptsResponse{
			Prompts: items,
			Pagination: Pagination{
				Page:       1,
				PageSize:   len(items),
				Total:      int64(len(items)),
				TotalPages: 1,
			},
		})
		return
	}

	page, pageSize := clampPagination(c)
	items, total, err := h.promptSvc.ListPage(ctx, category, page, pageSize)
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, "failed to list prompts")
		}
		return
	}
	if items == nil {
		items = []domain.Prompt{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListPromptsResponse{
		Prompts: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// SearchPrompts returns prompts whose title, content, or tags contain the
// query, caselessly. An empty query matches everything.
//
// GET /prompts/search?q=
func (h *Handlers) SearchPrompts(c *gin.Context) {
	items, err := h.promptSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, "failed to search prompts")
		}
		return
	}
	ok(c, http.StatusOK, SearchPromptsResponse{Prompts: items})
}

// UpvotePrompt increments the upvote count of the identified prompt. A
// missing prompt is a no-op; both cases answer 204.
//
// POST /prompts/{id}/upvote
func (h *Handlers) UpvotePrompt(c *gin.Context) {
	if err := h.promptSvc.Upvote(c.Request.Context(), c.Param("id")); err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeUpvoteFailed, "failed to upvote prompt")
		}
		return
	}
	noContent(c)
}
