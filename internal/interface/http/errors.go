package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/pkg/response"
)

// writeError maps the domain error taxonomy onto HTTP statuses. Storage and
// unknown failures never echo their cause to the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *domainerr.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, verr.Reason, nil)
	case domainerr.IsNotFound(err):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case domainerr.IsConflict(err):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case domainerr.IsStorage(err):
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("storage failure")
		response.Error[any](c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
	default:
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
