// Idempotency-Key handling.
//
// Clients may retry a prompt submission after a lost response by resending
// it with the same Idempotency-Key header. This middleware only validates
// the header and stashes it in the Gin context; the actual replay detection
// runs inside the service-layer transaction, where it is race-safe.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to deduplicate
// retried submissions.
const HeaderIdempotencyKey = "Idempotency-Key"

// idempotencyKeyCtx is the Gin context key holding the validated header value.
const idempotencyKeyCtx = "idempotency.key"

// idempotencyKeyPattern admits unreserved URI characters plus ':' so UUIDs,
// ULIDs, and prefixed client tokens all pass unmodified.
var idempotencyKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// maxIdempotencyKeyLen caps the accepted header length; the stored column
// is sized to match.
const maxIdempotencyKeyLen = 200

// IdempotencyKeyCheck validates the Idempotency-Key header when present and
// stores it for handlers via GetIdempotencyKey. A request without the header
// passes through untouched; a malformed or oversized key is rejected with
// 400 before any state changes.
func IdempotencyKeyCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen || !idempotencyKeyPattern.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.GetString(requestIDKey),
				"code":       "bad_request",
				"message":    "invalid Idempotency-Key header",
			})
			return
		}
		c.Set(idempotencyKeyCtx, key)
		c.Next()
	}
}

// GetIdempotencyKey returns the validated Idempotency-Key for this request,
// or "" when the client did not send one.
func GetIdempotencyKey(c *gin.Context) string {
	return c.GetString(idempotencyKeyCtx)
}
