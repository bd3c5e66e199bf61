package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	bearerScheme = "Bearer"
	userIDKey    = "userId"
)

const (
	errMissingAuth   = "missing Authorization header"
	errMalformedAuth = "invalid Authorization header format"
	errBadToken      = "invalid or expired token"
)

// requireUser lets the request through only with a valid bearer token and
// stores the token's user id in the context.
func (h *Handler) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.rejectUnauthorized(c, errMissingAuth, nil)
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != bearerScheme || strings.TrimSpace(token) == "" {
		h.rejectUnauthorized(c, errMalformedAuth, nil)
		return
	}

	userID, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		h.rejectUnauthorized(c, errBadToken, err)
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func (h *Handler) rejectUnauthorized(c *gin.Context, msg string, err error) {
	if h.log != nil {
		h.log.Debugw("auth_rejected", "path", c.Request.URL.Path, "reason", msg, "err", err)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// currentUserID returns the id stored by requireUser.
func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
