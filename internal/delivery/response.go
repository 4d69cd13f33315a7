package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"cfresh_inventory/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		if errors.Is(err, domain.ErrAlreadyExists) {
			return http.StatusConflict
		}
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// userMessage never exposes store internals.
func userMessage(err error, action string) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, domain.ErrNotFound):
		return "Not found."
	case errors.Is(err, domain.ErrPersistence):
		return "Database Error: Failed to " + action + "."
	}
	return "Something went wrong. Failed to " + action + "."
}

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	return id, err == nil && id > 0
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return domain.ClampPage(page)
}
