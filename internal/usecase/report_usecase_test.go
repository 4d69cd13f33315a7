package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newReportFixture(products int) (*reportUseCase, *MockReportStore) {
	var list []domain.Product
	for i := 0; i < products; i++ {
		list = append(list, domain.Product{ID: i + 1, VendorID: 2, Name: fmt.Sprintf("Item %d", i+1), ItemCode: fmt.Sprintf("C%d", i+1), Quantity: 100, Size: 250, Stock: 300, Unit: "oz"})
	}
	store := &MockReportStore{}
	uc := NewReportUseCase(
		&MockVendorRepo{Vendors: map[int]*domain.Vendor{2: {ID: 2, Name: "Hy-Vee", Salesman: "Dana"}}},
		&MockProductRepo{ByVendor: map[int][]domain.Product{2: list}},
		store,
		report.Company{Name: "C Fresh Market"},
		quietLogger(),
	).(*reportUseCase)
	uc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc, store
}

func TestGenerateReportXLSX(t *testing.T) {
	uc, _ := newReportFixture(2)

	rep, err := uc.GenerateReport(context.Background(), 2, domain.ReportXLSX)
	require.NoError(t, err)
	assert.Equal(t, "Hy-Vee_report.xlsx", rep.FileName)
	assert.Equal(t, domain.ContentTypeXLSX, rep.ContentType)
	assert.Zero(t, rep.Omitted)

	f, err := excelize.OpenReader(bytes.NewReader(rep.Content))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(report.SheetName, "C10")
	require.NoError(t, err)
	assert.Equal(t, "Item 1", name)

	size, err := f.GetCellValue(report.SheetName, "F11")
	require.NoError(t, err)
	assert.Equal(t, "2.5", size)

	stock, err := f.GetCellValue(report.SheetName, "H11")
	require.NoError(t, err)
	assert.Equal(t, "3", stock)
}

func TestGenerateReportFlagsOmittedProducts(t *testing.T) {
	uc, _ := newReportFixture(report.ItemRows + 2)

	rep, err := uc.GenerateReport(context.Background(), 2, domain.ReportPDF)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Omitted)
	assert.Equal(t, domain.ContentTypePDF, rep.ContentType)
	assert.True(t, bytes.HasPrefix(rep.Content, []byte("%PDF-")))
}

func TestGenerateReportUnknownVendor(t *testing.T) {
	uc, _ := newReportFixture(0)

	_, err := uc.GenerateReport(context.Background(), 7, domain.ReportXLSX)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GenerateReport(context.Background(), 0, domain.ReportXLSX)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportAndOpenReport(t *testing.T) {
	uc, store := newReportFixture(1)

	name, err := uc.ExportReport(context.Background(), 2, domain.ReportXLSX)
	require.NoError(t, err)
	assert.Equal(t, "Hy-Vee", store.lastVendorName)
	assert.Equal(t, ".xlsx", store.lastExt)

	rep, err := uc.OpenReport(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeXLSX, rep.ContentType)
	assert.NotEmpty(t, rep.Content)

	_, err = uc.OpenReport(context.Background(), "missing.xlsx")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.OpenReport(context.Background(), "notes.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportReportStoreFailure(t *testing.T) {
	uc, store := newReportFixture(1)
	store.SaveErr = errors.New("disk full")

	_, err := uc.ExportReport(context.Background(), 2, domain.ReportXLSX)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
