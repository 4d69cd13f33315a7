package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	useCase    usecase.ReportUseCase
	apiBaseURL string
	log        *logrus.Logger
}

func NewReportHandler(uc usecase.ReportUseCase, apiBaseURL string, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		useCase:    uc,
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		log:        logger,
	}
}

// RegisterPageRoutes registers the dashboard download link.
func (h *ReportHandler) RegisterPageRoutes(router gin.IRouter) {
	router.GET("/vendors/:id/report", h.ExportReport)
}

func (h *ReportHandler) RegisterAPIRoutes(router gin.IRouter) {
	reports := router.Group("/report")
	{
		reports.GET("", h.DownloadReport)
		reports.POST("/:vendorId", h.GenerateReport)
	}
}

// ExportReport stores the purchase order and hands the browser over to
// the file retrieval API. Failures go back to the vendor page as an alert.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	format, ok := domain.ParseReportFormat(c.Query("format"))
	if !ok {
		renderError(c, domain.NewValidationError("Unknown report format."), "generate report")
		return
	}

	name, err := h.useCase.ExportReport(c.Request.Context(), id, format)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderError(c, err, "generate report")
			return
		}
		h.log.Errorf("Failed to export report for vendor ID %d: %v", id, err)
		c.Redirect(http.StatusSeeOther, "/dashboard/vendors/"+strconv.Itoa(id)+"/view?report=failed")
		return
	}

	h.log.Infof("Report exported for vendor ID %d: %s", id, name)
	c.Redirect(http.StatusSeeOther, h.apiBaseURL+"/api/report?file="+url.QueryEscape(name))
}

// GenerateReport renders the purchase order and streams it without
// keeping a copy.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	id, ok := parseIDParam(c, "vendorId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid vendor ID format")
		return
	}
	format, ok := domain.ParseReportFormat(c.Query("format"))
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Unknown report format")
		return
	}

	rep, err := h.useCase.GenerateReport(c.Request.Context(), id, format)
	if err != nil {
		h.log.Errorf("Failed to generate report for vendor ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), userMessage(err, "generate report"))
		return
	}
	if rep.Omitted > 0 {
		c.Header("X-Report-Omitted", strconv.Itoa(rep.Omitted))
	}
	sendAttachment(c, rep)
}

func (h *ReportHandler) DownloadReport(c *gin.Context) {
	name := c.Query("file")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		h.log.Warnf("Rejected report file parameter: %q", name)
		ErrorResponse(c, http.StatusBadRequest, "Invalid or missing file name")
		return
	}

	rep, err := h.useCase.OpenReport(c.Request.Context(), name)
	if err != nil {
		status := mapErrorToStatus(err)
		if status == http.StatusNotFound {
			ErrorResponse(c, status, "File not found")
			return
		}
		h.log.Errorf("Failed to read report '%s': %v", name, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to read file")
		return
	}
	sendAttachment(c, rep)
}

func sendAttachment(c *gin.Context, rep *domain.Report) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.FileName))
	c.Data(http.StatusOK, rep.ContentType, rep.Content)
}
