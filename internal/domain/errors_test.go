package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	verr := NewValidationError("Missing Fields. Failed to create product.")
	assert.False(t, verr.HasErrors())

	verr.Add("productName", "Product name must be at least 3 characters")
	verr.Add("barcode", "Please enter a barcode")
	verr.Add("barcode", "second")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "Please enter a barcode", verr.First("barcode"))
	assert.Empty(t, verr.First("unit"))
	assert.Equal(t,
		"Missing Fields. Failed to create product. (barcode: Please enter a barcode, second; productName: Product name must be at least 3 characters)",
		verr.Error())
}

func TestValidationErrorUnwrapsCause(t *testing.T) {
	verr := &ValidationError{Message: "Vendor name already exists", Cause: ErrAlreadyExists}
	wrapped := fmt.Errorf("create vendor: %w", verr)

	assert.True(t, errors.Is(wrapped, ErrAlreadyExists))

	var target *ValidationError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "Vendor name already exists", target.Error())
}

func TestParseReportFormat(t *testing.T) {
	f, ok := ParseReportFormat("")
	assert.True(t, ok)
	assert.Equal(t, ReportXLSX, f)

	f, ok = ParseReportFormat("PDF")
	assert.True(t, ok)
	assert.Equal(t, ReportPDF, f)
	assert.Equal(t, ".pdf", f.Extension())
	assert.Equal(t, ContentTypePDF, f.ContentType())

	_, ok = ParseReportFormat("csv")
	assert.False(t, ok)
}
