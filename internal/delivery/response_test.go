package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cfresh_inventory/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	dup := &domain.ValidationError{Message: "exists", Cause: domain.ErrAlreadyExists}

	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "validation", err: domain.NewValidationError("Missing Fields."), status: http.StatusUnprocessableEntity, message: "Missing Fields."},
		{name: "duplicate name", err: dup, status: http.StatusConflict, message: "exists"},
		{name: "not found", err: fmt.Errorf("vendor 3: %w", domain.ErrNotFound), status: http.StatusNotFound, message: "Not found."},
		{name: "credentials", err: domain.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "forbidden", err: domain.ErrForbidden, status: http.StatusForbidden},
		{name: "persistence", err: fmt.Errorf("search: %w", domain.ErrPersistence), status: http.StatusInternalServerError, message: "Database Error: Failed to fetch vendors."},
		{name: "unknown", err: errors.New("pq: relation does not exist"), status: http.StatusInternalServerError, message: "Something went wrong. Failed to fetch vendors."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, mapErrorToStatus(tc.err))
			if tc.message != "" {
				assert.Equal(t, tc.message, userMessage(tc.err, "fetch vendors"))
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name  string
		query string
		want  int
	}{
		{name: "missing", query: "", want: 1},
		{name: "second page", query: "?page=2", want: 2},
		{name: "zero", query: "?page=0", want: 1},
		{name: "negative", query: "?page=-3", want: 1},
		{name: "not a number", query: "?page=two", want: 1},
		{name: "largest int", query: "?page=9223372036854775807", want: domain.MaxPage},
		{name: "beyond int", query: "?page=99999999999999999999", want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/products"+tc.query, nil)
			assert.Equal(t, tc.want, parsePage(c))
		})
	}
}
