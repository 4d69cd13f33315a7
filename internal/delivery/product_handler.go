package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const imageField = "imageURL"

type ProductHandler struct {
	products usecase.ProductUseCase
	vendors  usecase.VendorUseCase
	log      *logrus.Logger
}

func NewProductHandler(puc usecase.ProductUseCase, vuc usecase.VendorUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		products: puc,
		vendors:  vuc,
		log:      logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter, admin gin.HandlerFunc) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/create", admin, h.CreateForm)
		products.POST("", admin, h.CreateProduct)
		products.GET("/:id/view", h.ViewProduct)
		products.GET("/:id/edit", admin, h.EditForm)
		products.POST("/:id", admin, h.UpdateProduct)
		products.POST("/:id/stock", h.EditStock)
		products.POST("/:id/delete", admin, h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	query := c.Query("query")
	page, err := h.products.SearchProducts(c.Request.Context(), query, parsePage(c))
	if err != nil {
		h.log.Errorf("Failed to search products for '%s': %v", query, err)
		renderError(c, err, "fetch products")
		return
	}
	render(c, http.StatusOK, "products.tmpl", gin.H{
		"Title":  "Products",
		"Page":   page,
		"Search": gin.H{"Action": "/dashboard/products", "Query": query, "Placeholder": "Search products..."},
	})
}

func (h *ProductHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, productFormView{Title: "Create product", Action: "/dashboard/products"}, nil)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	view := productFormView{Title: "Create product", Action: "/dashboard/products"}
	if err := c.ShouldBind(&view.Form); err != nil {
		h.log.Warnf("Failed to bind product form: %v", err)
		h.renderForm(c, http.StatusBadRequest, view, domain.NewValidationError("Invalid form submission."))
		return
	}
	upload, closeUpload, err := formUpload(c)
	if err != nil {
		h.log.Warnf("Failed to read product image: %v", err)
		h.renderForm(c, http.StatusBadRequest, view, imageError("Failed to create product.", "Image could not be read"))
		return
	}
	defer closeUpload()

	product, err := h.products.CreateProduct(c.Request.Context(), view.Form, upload)
	if err != nil {
		if h.rejectForm(c, err, view) {
			return
		}
		h.log.Errorf("Failed to create product '%s': %v", view.Form.Name, err)
		renderError(c, err, "create product")
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", product.ID, product.Name)
	c.Redirect(http.StatusSeeOther, "/dashboard/products")
}

func (h *ProductHandler) ViewProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	h.renderView(c, http.StatusOK, id, nil)
}

func (h *ProductHandler) EditForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		renderError(c, err, "fetch product")
		return
	}
	view := productFormView{
		Title:        "Edit product",
		Action:       "/dashboard/products/" + strconv.Itoa(id),
		CurrentImage: product.Image,
		Form: usecase.ProductForm{
			Name:     product.Name,
			VendorID: strconv.Itoa(product.VendorID),
			ItemCode: product.ItemCode,
			Barcode:  product.Barcode,
			Quantity: product.Quantity.String(),
			Size:     product.Size.String(),
			Stock:    product.Stock.String(),
			Unit:     product.Unit,
		},
	}
	h.renderForm(c, http.StatusOK, view, nil)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	view := productFormView{Title: "Edit product", Action: "/dashboard/products/" + strconv.Itoa(id)}
	if err := c.ShouldBind(&view.Form); err != nil {
		h.log.Warnf("Failed to bind product form for ID %d: %v", id, err)
		h.renderForm(c, http.StatusBadRequest, view, domain.NewValidationError("Invalid form submission."))
		return
	}
	upload, closeUpload, err := formUpload(c)
	if err != nil {
		h.log.Warnf("Failed to read product image for ID %d: %v", id, err)
		h.renderForm(c, http.StatusBadRequest, view, imageError("Failed to update product.", "Image could not be read"))
		return
	}
	defer closeUpload()

	if _, err := h.products.UpdateProduct(c.Request.Context(), id, view.Form, upload); err != nil {
		if h.rejectForm(c, err, view) {
			return
		}
		h.log.Errorf("Failed to update product ID %d: %v", id, err)
		renderError(c, err, "update product")
		return
	}

	h.log.Infof("Product updated successfully: ID %d", id)
	c.Redirect(http.StatusSeeOther, "/dashboard/products")
}

// EditStock is the one product mutation open to every access level.
func (h *ProductHandler) EditStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	var form usecase.StockForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warnf("Failed to bind stock form for product ID %d: %v", id, err)
		h.renderView(c, http.StatusBadRequest, id, domain.NewValidationError("Invalid form submission."))
		return
	}

	if err := h.products.EditStock(c.Request.Context(), id, form); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			h.renderView(c, mapErrorToStatus(err), id, verr)
			return
		}
		h.log.Errorf("Failed to update stock for product ID %d: %v", id, err)
		renderError(c, err, "update stock")
		return
	}

	h.log.Infof("Stock updated for product ID %d", id)
	c.Redirect(http.StatusSeeOther, "/dashboard/products/"+strconv.Itoa(id)+"/view")
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Errorf("Failed to delete product ID %d: %v", id, err)
		renderError(c, err, "delete product")
		return
	}
	h.log.Infof("Product deleted successfully: ID %d", id)
	c.Redirect(http.StatusSeeOther, "/dashboard/products")
}

type productFormView struct {
	Title        string
	Action       string
	CurrentImage string
	Form         usecase.ProductForm
}

func (h *ProductHandler) rejectForm(c *gin.Context, err error, view productFormView) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	h.renderForm(c, mapErrorToStatus(err), view, verr)
	return true
}

func (h *ProductHandler) renderForm(c *gin.Context, status int, view productFormView, verr *domain.ValidationError) {
	vendors, err := h.vendors.ListAllVendors(c.Request.Context())
	if err != nil {
		renderError(c, err, "fetch vendors")
		return
	}
	data := gin.H{
		"Title":        view.Title,
		"Action":       view.Action,
		"Form":         view.Form,
		"CurrentImage": view.CurrentImage,
		"Vendors":      vendors,
	}
	if verr != nil {
		data["Message"] = verr.Message
		data["Errors"] = verr.Fields
	}
	render(c, status, "product_form.tmpl", data)
}

func (h *ProductHandler) renderView(c *gin.Context, status, id int, verr *domain.ValidationError) {
	ctx := c.Request.Context()
	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		renderError(c, err, "fetch product")
		return
	}
	prev, next, err := h.products.ProductNeighbors(ctx, product)
	if err != nil {
		renderError(c, err, "fetch product")
		return
	}
	data := gin.H{
		"Title":   product.Name,
		"Product": product,
		"Prev":    prev,
		"Next":    next,
	}
	if verr != nil {
		data["Message"] = verr.Message
		data["Errors"] = verr.Fields
	}
	render(c, status, "product_view.tmpl", data)
}

func imageError(message, detail string) *domain.ValidationError {
	verr := domain.NewValidationError(message)
	verr.Add(imageField, detail)
	return verr
}

// formUpload returns a nil upload when the form carries no file.
func formUpload(c *gin.Context) (*domain.Upload, func(), error) {
	noop := func() {}
	header, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) || (err == nil && header.Size == 0) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}
	return &domain.Upload{Filename: header.Filename, Size: header.Size, Content: file}, func() { file.Close() }, nil
}
