package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", errors.Wrap(service.ErrValidation, "name is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid status", service.ErrInvalidStatus, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"duplicate email", service.ErrDuplicateEmail, http.StatusConflict, "CONFLICT"},
		{"unknown email", service.ErrUnknownEmail, http.StatusNotFound, "UNKNOWN_EMAIL"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"expired token", service.ErrExpiredToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, log, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)
			require.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestUnknownErrorDoesNotLeakDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, log, errors.New("dsn=postgres://secret"))

	require.NotContains(t, w.Body.String(), "secret")
}
