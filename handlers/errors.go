package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const msgUnexpected = "An unexpected error occurred"

// internalError logs err and answers 500 without exposing it.
func internalError(c *gin.Context, log logrus.FieldLogger, where string, err error) {
	log.WithError(err).WithFields(logrus.Fields{
		"handler": where,
		"path":    c.Request.URL.Path,
	}).Error("Unhandled internal server error")
	_ = c.Error(err)
	ErrorResponse(c, http.StatusInternalServerError, msgUnexpected, nil)
}

// badRequest answers a binding failure with field-level messages.
func badRequest(c *gin.Context, err error) {
	ErrorResponse(c, http.StatusBadRequest, msgValidationFailed, validationErrors(err))
}
