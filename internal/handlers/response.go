package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/middleware"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

func success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes the error envelope. Internal errors are logged and, in
// production, replaced by a generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(apperr.KindOf(err))
	body := gin.H{"success": false, "error": err.Error()}

	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Details != nil {
		body["details"] = ae.Details
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.GetRequestID(c.Request.Context())).
			Msg("request failed")
		if h.production {
			body["error"] = "internal server error"
		}
	}

	c.AbortWithStatusJSON(status, body)
}

// bind decodes the JSON body into v and writes a 400 on failure.
func (h *Handler) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.fail(c, service.ValidationError(err))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
