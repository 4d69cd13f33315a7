package usecase

import (
	"context"
	"errors"

	"cfresh_inventory/internal/cache"
	"cfresh_inventory/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type VendorUseCase interface {
	CreateVendor(ctx context.Context, form VendorForm) (*domain.Vendor, error)
	UpdateVendor(ctx context.Context, id int, form VendorForm) (*domain.Vendor, error)
	DeleteVendor(ctx context.Context, id int) error
	GetVendor(ctx context.Context, id int) (*domain.Vendor, error)
	SearchVendors(ctx context.Context, query string, page int) (*domain.Page[domain.Vendor], error)
	ListVendorsByCategory(ctx context.Context, categoryID int) ([]domain.Vendor, error)
	ListAllVendors(ctx context.Context) ([]domain.Vendor, error)
	VendorProductCount(ctx context.Context, id int) (int, error)
}

type vendorUseCase struct {
	vendorRepo   domain.VendorRepository
	categoryRepo domain.CategoryRepository
	images       ImageStore
	cache        cache.ListingCache
	validate     *validator.Validate
	log          *logrus.Logger
}

func NewVendorUseCase(vRepo domain.VendorRepository, cRepo domain.CategoryRepository, images ImageStore, listings cache.ListingCache, logger *logrus.Logger) VendorUseCase {
	return &vendorUseCase{
		vendorRepo:   vRepo,
		categoryRepo: cRepo,
		images:       images,
		cache:        listings,
		validate:     newValidator(),
		log:          logger,
	}
}

func (uc *vendorUseCase) vendorFromForm(ctx context.Context, form VendorForm, message string) (*domain.Vendor, error) {
	form.normalize()
	verr, err := validateForm(uc.validate, &form, message)
	if err != nil {
		return nil, err
	}
	if verr == nil {
		verr = domain.NewValidationError(message)
	}
	categoryID := 0
	if verr.First("category") == "" {
		categoryID = positiveID(verr, "category", form.CategoryID, "Please select a category")
	}
	if categoryID > 0 {
		if _, err := uc.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, storeError(uc.log, "look up category", err)
			}
			verr.Add("category", "Please select a valid category")
		}
	}
	if verr.HasErrors() {
		uc.log.WithField("fields", verr.Fields).Warn("Use Case: Vendor form rejected")
		return nil, verr
	}
	return &domain.Vendor{
		Name:       form.Name,
		CategoryID: categoryID,
		Address:    form.Address,
		Phone:      form.Phone,
		Salesman:   form.Salesman,
	}, nil
}

func missingCategory(err error, message string) error {
	verr := &domain.ValidationError{Message: message, Cause: err}
	verr.Add("category", "Please select a valid category")
	return verr
}

func duplicateVendor(err error, message string) error {
	verr := &domain.ValidationError{Message: message, Cause: err}
	verr.Add("vendorName", "Vendor name already exists")
	return verr
}

func (uc *vendorUseCase) CreateVendor(ctx context.Context, form VendorForm) (*domain.Vendor, error) {
	const message = "Missing Fields. Failed to create vendor."
	vendor, err := uc.vendorFromForm(ctx, form, message)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create vendor '%s'", vendor.Name)
	created, err := uc.vendorRepo.CreateVendor(ctx, vendor)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, duplicateVendor(err, "Failed to create vendor, name already exists.")
		}
		if errors.Is(err, domain.ErrMissingReference) {
			return nil, missingCategory(err, message)
		}
		return nil, storeError(uc.log, "create vendor", err)
	}

	uc.cache.Invalidate(ctx, cache.EntityVendors)
	uc.log.Infof("Use Case: Vendor '%s' created successfully with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *vendorUseCase) UpdateVendor(ctx context.Context, id int, form VendorForm) (*domain.Vendor, error) {
	const message = "Missing Fields. Failed to update vendor."
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	vendor, err := uc.vendorFromForm(ctx, form, message)
	if err != nil {
		return nil, err
	}
	vendor.ID = id

	updated, err := uc.vendorRepo.UpdateVendor(ctx, vendor)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, duplicateVendor(err, "Failed to update vendor, name already exists.")
		}
		if errors.Is(err, domain.ErrMissingReference) {
			return nil, missingCategory(err, message)
		}
		return nil, storeError(uc.log, "update vendor", err)
	}

	uc.cache.Invalidate(ctx, cache.EntityVendors, cache.EntityProducts)
	uc.log.Infof("Use Case: Vendor ID %d updated successfully", id)
	return updated, nil
}

// DeleteVendor removes the vendor and its products, then their image
// files. A file that cannot be removed is logged and left behind.
func (uc *vendorUseCase) DeleteVendor(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	images, err := uc.vendorRepo.DeleteVendor(ctx, id)
	if err != nil {
		return storeError(uc.log, "delete vendor", err)
	}
	uc.cache.Invalidate(ctx, cache.EntityVendors, cache.EntityProducts)

	for _, image := range images {
		if err := uc.images.Remove(image); err != nil {
			uc.log.WithFields(logrus.Fields{"vendor_id": id, "image": image}).Warnf("Use Case: Failed to remove product image: %v", err)
		}
	}
	uc.log.WithFields(logrus.Fields{"vendor_id": id, "images": len(images)}).Info("Use Case: Vendor deleted")
	return nil
}

func (uc *vendorUseCase) GetVendor(ctx context.Context, id int) (*domain.Vendor, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get vendor with invalid ID: %d", id)
		return nil, domain.ErrNotFound
	}
	vendor, err := uc.vendorRepo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, storeError(uc.log, "get vendor", err)
	}
	return vendor, nil
}

func (uc *vendorUseCase) SearchVendors(ctx context.Context, query string, page int) (*domain.Page[domain.Vendor], error) {
	page = domain.ClampPage(page)
	key := cacheKey(query, page)
	cached := &domain.Page[domain.Vendor]{}
	slot, hit := uc.cache.Get(ctx, cache.EntityVendors, key, cached)
	if hit {
		return cached, nil
	}

	result, err := uc.vendorRepo.SearchVendors(ctx, query, page)
	if err != nil {
		return nil, storeError(uc.log, "search vendors", err)
	}
	uc.cache.Set(ctx, slot, result)
	return result, nil
}

func (uc *vendorUseCase) ListVendorsByCategory(ctx context.Context, categoryID int) ([]domain.Vendor, error) {
	if _, err := uc.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, storeError(uc.log, "get category", err)
	}
	vendors, err := uc.vendorRepo.ListVendorsByCategory(ctx, categoryID)
	if err != nil {
		return nil, storeError(uc.log, "list vendors by category", err)
	}
	return vendors, nil
}

func (uc *vendorUseCase) ListAllVendors(ctx context.Context) ([]domain.Vendor, error) {
	key := "all"
	var cached []domain.Vendor
	slot, hit := uc.cache.Get(ctx, cache.EntityVendors, key, &cached)
	if hit {
		return cached, nil
	}
	vendors, err := uc.vendorRepo.ListVendors(ctx)
	if err != nil {
		return nil, storeError(uc.log, "list vendors", err)
	}
	uc.cache.Set(ctx, slot, vendors)
	return vendors, nil
}

func (uc *vendorUseCase) VendorProductCount(ctx context.Context, id int) (int, error) {
	count, err := uc.vendorRepo.CountVendorProducts(ctx, id)
	if err != nil {
		return 0, storeError(uc.log, "count vendor products", err)
	}
	return count, nil
}
