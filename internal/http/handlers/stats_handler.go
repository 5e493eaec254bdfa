// Usage-statistics HTTP handlers.
//
// This file exposes the REST endpoints for per-user usage statistics and
// achievements:
//   - GET  /stats          (aggregate incl. achievements, seeded on first access)
//   - POST /stats/login    (record a login)
//   - POST /stats/messages (record a sent message)
//   - POST /stats/shares   (record a shared prompt)
//
// The counter endpoints return the refreshed aggregate so clients can render
// newly advanced or unlocked achievements without a second round trip.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the stats aggregate for the current user, creating and
// seeding it on first access.
//
// GET /stats
func (h *Handlers) GetStats(c *gin.Context) {
	st, err := h.statsSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to load stats")
		}
		return
	}
	ok(c, http.StatusOK, st)
}

// RecordLogin increments the login counter, stamps the last login time, and
// advances performance achievements.
//
// POST /stats/login
func (h *Handlers) RecordLogin(c *gin.Context) {
	st, err := h.statsSvc.RecordLogin(c.Request.Context(), userID(c))
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to record login")
		}
		return
	}
	ok(c, http.StatusOK, st)
}

// RecordMessage increments the message counter and advances usage
// achievements.
//
// POST /stats/messages
func (h *Handlers) RecordMessage(c *gin.Context) {
	st, err := h.statsSvc.RecordMessage(c.Request.Context(), userID(c))
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to record message")
		}
		return
	}
	ok(c, http.StatusOK, st)
}

// RecordShare increments the share counter and advances social achievements.
//
// POST /stats/shares
func (h *Handlers) RecordShare(c *gin.Context) {
	st, err := h.statsSvc.RecordShare(c.Request.Context(), userID(c))
	if err != nil {
		if !failService(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to record share")
		}
		return
	}
	ok(c, http.StatusOK, st)
}
