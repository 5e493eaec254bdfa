// License HTTP handlers.
//
// This file exposes the REST endpoints for the license activation log:
//   - GET  /licenses/used?key= (existence check)
//   - POST /licenses           (save activation)
//   - GET  /licenses/history   (activation log, newest first)
//
// Handlers in this file are transport-thin: they validate input, delegate to
// the license service, and translate service sentinels into HTTP results.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
	"github.com/promptkeep/go-prompt-backend/internal/services"
)

// SaveLicenseRequest is the JSON payload for recording a license activation.
type SaveLicenseRequest struct {
	// Key is the license key being activated.
	Key string `json:"key" binding:"required"`
	// ProductID identifies the product the key belongs to.
	ProductID string `json:"product_id"`
	// Timestamp is the activation time as reported by the client (RFC 3339).
	// Absent, the server stamps the record with the current time.
	Timestamp *time.Time `json:"timestamp"`
}

// LicenseUsedResponse answers the existence check.
type LicenseUsedResponse struct {
	Used bool `json:"used"`
}

// LicenseHistoryResponse wraps the activation log.
type LicenseHistoryResponse struct {
	Licenses []domain.LicenseRecord `json:"licenses"`
}

// LicenseUsed reports whether an activation record exists for the given key.
// An empty key reads as unused.
//
// GET /licenses/used?key= -> 200 {"used": bool}
func (h *Handlers) LicenseUsed(c *gin.Context) {
	used, err := h.licenseSvc.IsUsed(c.Request.Context(), c.Query("key"))
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to check license")
		}
		return
	}
	ok(c, http.StatusOK, LicenseUsedResponse{Used: used})
}

// SaveLicense appends an activation record. A key that was already activated
// answers 409 and leaves the log unchanged.
//
// POST /licenses -> 201 / 409
func (h *Handlers) SaveLicense(c *gin.Context) {
	var req SaveLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "key is required")
		return
	}

	var at time.Time
	if req.Timestamp != nil {
		at = *req.Timestamp
	}
	if err := h.licenseSvc.Save(c.Request.Context(), req.Key, req.ProductID, at); err != nil {
		switch {
		case failService(c, err):
		case errors.Is(err, services.ErrEmptyLicenseKey):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "key must be non-empty")
		case errors.Is(err, services.ErrDuplicateLicense):
			fail(c, http.StatusConflict, ErrCodeConflict, "license key already used")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "failed to save license")
		}
		return
	}
	c.Status(http.StatusCreated)
}

// LicenseHistory returns all activation records ordered by activation time
// descending.
//
// GET /licenses/history
func (h *Handlers) LicenseHistory(c *gin.Context) {
	list, err := h.licenseSvc.History(c.Request.Context())
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, "failed to list licenses")
		}
		return
	}
	ok(c, http.StatusOK, LicenseHistoryResponse{Licenses: list})
}
