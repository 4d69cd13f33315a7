package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/report"
	"cfresh_inventory/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type VendorHandler struct {
	vendors    usecase.VendorUseCase
	products   usecase.ProductUseCase
	categories usecase.CategoryUseCase
	log        *logrus.Logger
}

func NewVendorHandler(vuc usecase.VendorUseCase, puc usecase.ProductUseCase, cuc usecase.CategoryUseCase, logger *logrus.Logger) *VendorHandler {
	return &VendorHandler{
		vendors:    vuc,
		products:   puc,
		categories: cuc,
		log:        logger,
	}
}

// RegisterRoutes expects router to be behind RequireSession; admin only
// routes get the extra guard.
func (h *VendorHandler) RegisterRoutes(router gin.IRouter, admin gin.HandlerFunc) {
	vendors := router.Group("/vendors")
	{
		vendors.GET("", h.ListVendors)
		vendors.GET("/create", admin, h.CreateForm)
		vendors.POST("", admin, h.CreateVendor)
		vendors.GET("/category/:id", h.VendorsByCategory)
		vendors.GET("/:id/view", h.ViewVendor)
		vendors.GET("/:id/products", h.VendorProducts)
		vendors.GET("/:id/edit", admin, h.EditForm)
		vendors.POST("/:id", admin, h.UpdateVendor)
		vendors.POST("/:id/delete", admin, h.DeleteVendor)
	}
}

func (h *VendorHandler) ListVendors(c *gin.Context) {
	query := c.Query("query")
	page, err := h.vendors.SearchVendors(c.Request.Context(), query, parsePage(c))
	if err != nil {
		h.log.Errorf("Failed to search vendors for '%s': %v", query, err)
		renderError(c, err, "fetch vendors")
		return
	}
	render(c, http.StatusOK, "vendors.tmpl", gin.H{
		"Title":  "Vendors",
		"Page":   page,
		"Search": gin.H{"Action": "/dashboard/vendors", "Query": query, "Placeholder": "Search vendors..."},
	})
}

func (h *VendorHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "Create vendor", "/dashboard/vendors", usecase.VendorForm{}, nil)
}

func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var form usecase.VendorForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warnf("Failed to bind vendor form: %v", err)
		h.renderForm(c, http.StatusBadRequest, "Create vendor", "/dashboard/vendors", form, domain.NewValidationError("Invalid form submission."))
		return
	}

	vendor, err := h.vendors.CreateVendor(c.Request.Context(), form)
	if err != nil {
		if h.rejectForm(c, err, "Create vendor", "/dashboard/vendors", form) {
			return
		}
		h.log.Errorf("Failed to create vendor '%s': %v", form.Name, err)
		renderError(c, err, "create vendor")
		return
	}

	h.log.Infof("Vendor created successfully: ID %d, Name %s", vendor.ID, vendor.Name)
	c.Redirect(http.StatusSeeOther, "/dashboard/vendors")
}

func (h *VendorHandler) ViewVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	ctx := c.Request.Context()
	vendor, err := h.vendors.GetVendor(ctx, id)
	if err != nil {
		renderError(c, err, "fetch vendor")
		return
	}
	count, err := h.vendors.VendorProductCount(ctx, id)
	if err != nil {
		renderError(c, err, "count vendor products")
		return
	}
	render(c, http.StatusOK, "vendor_view.tmpl", gin.H{
		"Title":        vendor.Name,
		"Vendor":       vendor,
		"ProductCount": count,
		"ReportRows":   report.ItemRows,
		"ReportFailed": c.Query("report") == "failed",
	})
}

func (h *VendorHandler) VendorProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	ctx := c.Request.Context()
	vendor, err := h.vendors.GetVendor(ctx, id)
	if err != nil {
		renderError(c, err, "fetch vendor")
		return
	}
	products, err := h.products.ListVendorProducts(ctx, id)
	if err != nil {
		renderError(c, err, "fetch vendor products")
		return
	}
	render(c, http.StatusOK, "vendor_products.tmpl", gin.H{
		"Title":    vendor.Name,
		"Vendor":   vendor,
		"Products": products,
	})
}

func (h *VendorHandler) VendorsByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	ctx := c.Request.Context()
	category, err := h.categories.GetCategory(ctx, id)
	if err != nil {
		renderError(c, err, "fetch category")
		return
	}
	vendors, err := h.vendors.ListVendorsByCategory(ctx, id)
	if err != nil {
		renderError(c, err, "fetch vendors")
		return
	}
	render(c, http.StatusOK, "vendors_by_category.tmpl", gin.H{
		"Title":    category.Name,
		"Category": category,
		"Vendors":  vendors,
	})
}

func (h *VendorHandler) EditForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	vendor, err := h.vendors.GetVendor(c.Request.Context(), id)
	if err != nil {
		renderError(c, err, "fetch vendor")
		return
	}
	form := usecase.VendorForm{
		Name:       vendor.Name,
		CategoryID: strconv.Itoa(vendor.CategoryID),
		Address:    vendor.Address,
		Phone:      vendor.Phone,
		Salesman:   vendor.Salesman,
	}
	h.renderForm(c, http.StatusOK, "Edit vendor", "/dashboard/vendors/"+strconv.Itoa(id), form, nil)
}

func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	action := "/dashboard/vendors/" + strconv.Itoa(id)

	var form usecase.VendorForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warnf("Failed to bind vendor form for ID %d: %v", id, err)
		h.renderForm(c, http.StatusBadRequest, "Edit vendor", action, form, domain.NewValidationError("Invalid form submission."))
		return
	}

	if _, err := h.vendors.UpdateVendor(c.Request.Context(), id, form); err != nil {
		if h.rejectForm(c, err, "Edit vendor", action, form) {
			return
		}
		h.log.Errorf("Failed to update vendor ID %d: %v", id, err)
		renderError(c, err, "update vendor")
		return
	}

	h.log.Infof("Vendor updated successfully: ID %d", id)
	c.Redirect(http.StatusSeeOther, "/dashboard/vendors")
}

func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	if err := h.vendors.DeleteVendor(c.Request.Context(), id); err != nil {
		h.log.Errorf("Failed to delete vendor ID %d: %v", id, err)
		renderError(c, err, "delete vendor")
		return
	}
	h.log.Infof("Vendor deleted successfully: ID %d", id)
	c.Redirect(http.StatusSeeOther, "/dashboard/vendors")
}

// rejectForm re-renders the form when err carries field errors.
func (h *VendorHandler) rejectForm(c *gin.Context, err error, title, action string, form usecase.VendorForm) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	h.renderForm(c, mapErrorToStatus(err), title, action, form, verr)
	return true
}

func (h *VendorHandler) renderForm(c *gin.Context, status int, title, action string, form usecase.VendorForm, verr *domain.ValidationError) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		renderError(c, err, "fetch categories")
		return
	}
	data := gin.H{
		"Title":      title,
		"Action":     action,
		"Form":       form,
		"Categories": categories,
	}
	if verr != nil {
		data["Message"] = verr.Message
		data["Errors"] = verr.Fields
	}
	render(c, status, "vendor_form.tmpl", data)
}
