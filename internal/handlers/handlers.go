package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "taskmanager/internal/errors"
)

// respondServiceError maps the service error taxonomy onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case apierrors.IsNotFound(err):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, apierrors.ErrForbidden):
		apierrors.Forbidden(c, "")
	case apierrors.IsUserExists(err):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// pathID parses a numeric path parameter. The second return value reports
// whether parsing succeeded; on failure a 400 response has been written.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
