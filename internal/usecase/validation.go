package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"cfresh_inventory/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// VendorForm is the vendor create and edit form as submitted.
type VendorForm struct {
	Name       string `form:"vendorName" validate:"required,min=3"`
	CategoryID string `form:"category" validate:"required,number"`
	Address    string `form:"address" validate:"max=500"`
	Phone      string `form:"phone" validate:"max=50"`
	Salesman   string `form:"salesman" validate:"max=255"`
}

// ProductForm is the product create and edit form as submitted. Numbers
// stay strings until they pass validation.
type ProductForm struct {
	Name     string `form:"productName" validate:"required,min=3"`
	VendorID string `form:"vendorId" validate:"required,number"`
	ItemCode string `form:"itemcode" validate:"required"`
	Barcode  string `form:"barcode" validate:"required"`
	Quantity string `form:"quantity" validate:"required,decimal,scaled,decimal_gt=0"`
	Size     string `form:"size" validate:"required,decimal,scaled,decimal_gt=0"`
	Stock    string `form:"stock" validate:"required,decimal,scaled,decimal_gte=0"`
	Unit     string `form:"unit" validate:"required"`
}

type StockForm struct {
	Stock string `form:"stock" validate:"required,decimal,scaled,decimal_gte=0"`
}

var fieldLabels = map[string]string{
	"vendorName":  "Vendor name",
	"category":    "Category",
	"address":     "Address",
	"phone":       "Phone",
	"salesman":    "Salesman",
	"productName": "Product name",
	"vendorId":    "Vendor",
	"itemcode":    "Item code",
	"barcode":     "Barcode",
	"quantity":    "Quantity",
	"size":        "Size",
	"stock":       "Stock",
	"unit":        "Unit",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("scaled", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseScaled(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("decimal_gt", decimalBound(func(d, bound decimal.Decimal) bool { return d.GreaterThan(bound) }))
	_ = v.RegisterValidation("decimal_gte", decimalBound(func(d, bound decimal.Decimal) bool { return d.GreaterThanOrEqual(bound) }))
	return v
}

func decimalBound(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "number", "decimal":
		return fmt.Sprintf("%s must be a number", label)
	case "scaled":
		return fmt.Sprintf("%s is too large", label)
	case "decimal_gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "decimal_gte":
		return fmt.Sprintf("%s must be %s or more", label, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", label)
}

// validateForm runs struct validation and collects the failures into a
// ValidationError keyed by form field name. It returns nil when the form
// is valid.
func validateForm(v *validator.Validate, form any, message string) (*domain.ValidationError, error) {
	err := v.Struct(form)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("could not validate form: %w", err)
	}
	verr := domain.NewValidationError(message)
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr, nil
}

func (f *VendorForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Salesman = strings.TrimSpace(f.Salesman)
}

func (f *ProductForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.VendorID = strings.TrimSpace(f.VendorID)
	f.ItemCode = strings.TrimSpace(f.ItemCode)
	f.Barcode = strings.TrimSpace(f.Barcode)
	f.Quantity = strings.TrimSpace(f.Quantity)
	f.Size = strings.TrimSpace(f.Size)
	f.Stock = strings.TrimSpace(f.Stock)
	f.Unit = strings.TrimSpace(f.Unit)
}

// positiveID parses a form id. Zero or negative ids are reported on field.
func positiveID(verr *domain.ValidationError, field, raw, msg string) int {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		verr.Add(field, msg)
		return 0
	}
	return id
}
