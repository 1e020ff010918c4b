package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/armii/platform-admin/pkg/constant"
	"github.com/armii/platform-admin/pkg/errs"
	"github.com/gin-gonic/gin"
)

// errorResponse maps a domain error to its status code and response body.
func errorResponse(c *gin.Context, err error) (int, gin.H) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, errs.ErrNoConnectedAccount),
		errors.Is(err, errs.ErrSuperseded):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "routes: request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		return status, gin.H{"error": constant.SOMETHING_WENT_WRONG}
	}

	body := gin.H{"error": err.Error()}
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Errors
	}
	return status, body
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorResponse(c, err))
}

func invalidRequest(c *gin.Context, err error) {
	slog.DebugContext(c.Request.Context(), "routes: invalid request", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": constant.INVALID_REQUEST})
}
