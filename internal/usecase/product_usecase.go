package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cfresh_inventory/internal/cache"
	"cfresh_inventory/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	CreateProduct(ctx context.Context, form ProductForm, image *domain.Upload) (*domain.Product, error)
	// UpdateProduct keeps the current image when image is nil.
	UpdateProduct(ctx context.Context, id int, form ProductForm, image *domain.Upload) (*domain.Product, error)
	EditStock(ctx context.Context, id int, form StockForm) error
	DeleteProduct(ctx context.Context, id int) error
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	SearchProducts(ctx context.Context, query string, page int) (*domain.Page[domain.Product], error)
	ListVendorProducts(ctx context.Context, vendorID int) ([]domain.Product, error)
	ProductNeighbors(ctx context.Context, product *domain.Product) (*domain.Product, *domain.Product, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	vendorRepo  domain.VendorRepository
	images      ImageStore
	cache       cache.ListingCache
	validate    *validator.Validate
	log         *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, vRepo domain.VendorRepository, images ImageStore, listings cache.ListingCache, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: pRepo,
		vendorRepo:  vRepo,
		images:      images,
		cache:       listings,
		validate:    newValidator(),
		log:         logger,
	}
}

func (uc *productUseCase) productFromForm(ctx context.Context, form ProductForm, image *domain.Upload, imageRequired bool, message string) (*domain.Product, *domain.ValidationError, error) {
	form.normalize()
	verr, err := validateForm(uc.validate, &form, message)
	if err != nil {
		return nil, nil, err
	}
	if verr == nil {
		verr = domain.NewValidationError(message)
	}

	switch {
	case image == nil && imageRequired:
		verr.Add("imageURL", "Please upload an image")
	case image != nil && image.Size > domain.MaxImageBytes:
		verr.Add("imageURL", "Image must be 5MB or smaller")
	}

	vendorID := 0
	if verr.First("vendorId") == "" {
		vendorID = positiveID(verr, "vendorId", form.VendorID, "Please select a vendor")
	}
	if vendorID > 0 {
		if _, err := uc.vendorRepo.GetVendorByID(ctx, vendorID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, nil, storeError(uc.log, "look up vendor", err)
			}
			verr.Add("vendorId", "Please select a valid vendor")
		}
	}
	if verr.HasErrors() {
		uc.log.WithField("fields", verr.Fields).Warn("Use Case: Product form rejected")
		return nil, verr, verr
	}

	product := &domain.Product{
		VendorID: vendorID,
		Name:     form.Name,
		ItemCode: form.ItemCode,
		Barcode:  form.Barcode,
		Unit:     form.Unit,
	}
	// Already validated as decimals.
	product.Quantity, _ = domain.ParseScaled(form.Quantity)
	product.Size, _ = domain.ParseScaled(form.Size)
	product.Stock, _ = domain.ParseScaled(form.Stock)
	return product, verr, nil
}

// missingVendor reports a vendor deleted between the form check and the write.
func missingVendor(verr *domain.ValidationError, cause error) error {
	verr.Cause = cause
	verr.Add("vendorId", "Please select a valid vendor")
	return verr
}

func (uc *productUseCase) saveImage(image *domain.Upload, verr *domain.ValidationError) (string, error) {
	path, err := uc.images.Save(image)
	if err == nil {
		return path, nil
	}
	switch {
	case errors.Is(err, domain.ErrUnsupportedImage):
		verr.Add("imageURL", "Image must be a JPEG, PNG or SVG file")
		return "", verr
	case errors.Is(err, domain.ErrImageTooLarge):
		verr.Add("imageURL", "Image must be 5MB or smaller")
		return "", verr
	}
	uc.log.Errorf("Use Case: Failed to save image '%s': %v", image.Filename, err)
	return "", fmt.Errorf("save image: %w", domain.ErrPersistence)
}

func (uc *productUseCase) discardImage(path string) {
	if path == "" {
		return
	}
	if err := uc.images.Remove(path); err != nil {
		uc.log.WithField("image", path).Warnf("Use Case: Failed to remove product image: %v", err)
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, form ProductForm, image *domain.Upload) (*domain.Product, error) {
	product, verr, err := uc.productFromForm(ctx, form, image, true, "Missing Fields. Failed to create product.")
	if err != nil {
		return nil, err
	}

	product.Image, err = uc.saveImage(image, verr)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", product.Name)
	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.discardImage(product.Image)
		if errors.Is(err, domain.ErrMissingReference) {
			return nil, missingVendor(verr, err)
		}
		return nil, storeError(uc.log, "create product", err)
	}

	uc.cache.Invalidate(ctx, cache.EntityProducts)
	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id int, form ProductForm, image *domain.Upload) (*domain.Product, error) {
	existing, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product, verr, err := uc.productFromForm(ctx, form, image, false, "Missing Fields. Failed to update product.")
	if err != nil {
		return nil, err
	}
	product.ID = id
	product.Image = existing.Image

	newImage := ""
	if image != nil {
		newImage, err = uc.saveImage(image, verr)
		if err != nil {
			return nil, err
		}
		product.Image = newImage
	}

	updated, err := uc.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		uc.discardImage(newImage)
		if errors.Is(err, domain.ErrMissingReference) {
			return nil, missingVendor(verr, err)
		}
		return nil, storeError(uc.log, "update product", err)
	}
	if newImage != "" {
		uc.discardImage(existing.Image)
	}

	uc.cache.Invalidate(ctx, cache.EntityProducts)
	uc.log.Infof("Use Case: Product ID %d updated successfully", id)
	return updated, nil
}

func (uc *productUseCase) EditStock(ctx context.Context, id int, form StockForm) error {
	const message = "Missing Fields. Failed to update stock."
	if id <= 0 {
		return domain.ErrNotFound
	}
	form.Stock = strings.TrimSpace(form.Stock)
	verr, err := validateForm(uc.validate, &form, message)
	if err != nil {
		return err
	}
	if verr != nil {
		uc.log.WithField("fields", verr.Fields).Warn("Use Case: Stock form rejected")
		return verr
	}
	stock, _ := domain.ParseScaled(form.Stock)

	if err := uc.productRepo.UpdateStock(ctx, id, stock); err != nil {
		return storeError(uc.log, "update stock", err)
	}
	uc.cache.Invalidate(ctx, cache.EntityProducts)
	return nil
}

// DeleteProduct removes the row and then its image file. A file that
// cannot be removed is logged and left behind.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	image, err := uc.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		return storeError(uc.log, "delete product", err)
	}
	uc.discardImage(image)
	uc.cache.Invalidate(ctx, cache.EntityProducts)
	uc.log.Infof("Use Case: Product ID %d deleted", id)
	return nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get product with invalid ID: %d", id)
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, storeError(uc.log, "get product", err)
	}
	return product, nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string, page int) (*domain.Page[domain.Product], error) {
	page = domain.ClampPage(page)
	key := cacheKey(query, page)
	cached := &domain.Page[domain.Product]{}
	slot, hit := uc.cache.Get(ctx, cache.EntityProducts, key, cached)
	if hit {
		return cached, nil
	}

	result, err := uc.productRepo.SearchProducts(ctx, query, page)
	if err != nil {
		return nil, storeError(uc.log, "search products", err)
	}
	uc.cache.Set(ctx, slot, result)
	return result, nil
}

func (uc *productUseCase) ListVendorProducts(ctx context.Context, vendorID int) ([]domain.Product, error) {
	products, err := uc.productRepo.ListProductsByVendor(ctx, vendorID)
	if err != nil {
		return nil, storeError(uc.log, "list vendor products", err)
	}
	return products, nil
}

func (uc *productUseCase) ProductNeighbors(ctx context.Context, product *domain.Product) (*domain.Product, *domain.Product, error) {
	prev, next, err := uc.productRepo.GetProductNeighbors(ctx, product.ID, product.VendorID)
	if err != nil {
		return nil, nil, storeError(uc.log, "get neighboring products", err)
	}
	return prev, next, nil
}
