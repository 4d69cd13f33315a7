package delivery

import (
	"net/http"

	"cfresh_inventory/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	categories usecase.CategoryUseCase
	log        *logrus.Logger
}

func NewDashboardHandler(cuc usecase.CategoryUseCase, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{categories: cuc, log: logger}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to load dashboard categories: %v", err)
		renderError(c, err, "fetch categories")
		return
	}
	render(c, http.StatusOK, "dashboard.tmpl", gin.H{"Title": "Dashboard", "Categories": categories})
}
