package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"firing_curve/internal/builder"
	"firing_curve/internal/curve"
	"firing_curve/internal/service"

	"github.com/gin-gonic/gin"
)

const errInternal = "internal error"

// statusFor maps service and curve errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, curve.ErrIndexOutOfRange),
		errors.Is(err, curve.ErrInvalidValue),
		errors.Is(err, builder.ErrInvalidParams),
		errors.Is(err, service.ErrInvalidTimeRange):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, curve.ErrPhaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrKilnRunning),
		errors.Is(err, service.ErrEmptyProgram):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Server errors are logged and hidden from
// the client; client errors are echoed.
func (h *Handler) fail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	fields := append([]interface{}{"err", err}, kv...)
	if uid, ok := currentUserID(c); ok {
		fields = append(fields, "user_id", uid)
	}
	if code == http.StatusInternalServerError {
		if h.log != nil {
			h.log.Errorw(logKey, fields...)
		}
		c.JSON(code, gin.H{"error": errInternal})
		return
	}
	if h.log != nil {
		h.log.Infow(logKey, fields...)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// badRequest answers 400 with msg.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// optionalInt converts a decoded JSON number to an int; nil stays nil.
func optionalInt(field string, v *float64) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n, err := curve.ToInt(*v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &n, nil
}
