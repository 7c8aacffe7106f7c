package handlers

import (
	"errors"
	"io"
	"net/http"

	"valleycars/internal/domain"
	"valleycars/internal/http/middleware"
	"valleycars/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, http.StatusBadRequest, "empty_body", "request body is required", nil)
			return false
		}
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", nil)
		return false
	}
	return true
}

func asValidation(err error) (domain.ValidationError, bool) {
	var ve domain.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func logHandlerError(c *gin.Context, err error) {
	utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err)
}
