package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/report"

	"github.com/sirupsen/logrus"
)

type ReportUseCase interface {
	GenerateReport(ctx context.Context, vendorID int, format domain.ReportFormat) (*domain.Report, error)
	// ExportReport generates the report and stores it, returning the
	// stored file name.
	ExportReport(ctx context.Context, vendorID int, format domain.ReportFormat) (string, error)
	OpenReport(ctx context.Context, name string) (*domain.Report, error)
}

type reportUseCase struct {
	vendorRepo  domain.VendorRepository
	productRepo domain.ProductRepository
	store       ReportStore
	company     report.Company
	now         func() time.Time
	log         *logrus.Logger
}

func NewReportUseCase(vRepo domain.VendorRepository, pRepo domain.ProductRepository, store ReportStore, company report.Company, logger *logrus.Logger) ReportUseCase {
	return &reportUseCase{
		vendorRepo:  vRepo,
		productRepo: pRepo,
		store:       store,
		company:     company,
		now:         time.Now,
		log:         logger,
	}
}

func (uc *reportUseCase) GenerateReport(ctx context.Context, vendorID int, format domain.ReportFormat) (*domain.Report, error) {
	rep, _, err := uc.generate(ctx, vendorID, format)
	return rep, err
}

func (uc *reportUseCase) generate(ctx context.Context, vendorID int, format domain.ReportFormat) (*domain.Report, *domain.Vendor, error) {
	if vendorID <= 0 {
		return nil, nil, domain.ErrNotFound
	}
	vendor, err := uc.vendorRepo.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, nil, storeError(uc.log, "get vendor", err)
	}
	products, err := uc.productRepo.ListProductsByVendor(ctx, vendorID)
	if err != nil {
		return nil, nil, storeError(uc.log, "list vendor products", err)
	}

	sheet := report.Layout(report.Form{
		Company:  uc.company,
		Vendor:   *vendor,
		Products: products,
		Date:     uc.now(),
	})
	if sheet.Omitted > 0 {
		uc.log.WithFields(logrus.Fields{
			"vendor_id": vendorID,
			"products":  len(products),
			"omitted":   sheet.Omitted,
		}).Warnf("Use Case: Purchase order holds %d products, extra products left off", report.ItemRows)
	}

	var content []byte
	switch format {
	case domain.ReportPDF:
		content, err = report.RenderPDF(sheet)
	default:
		format = domain.ReportXLSX
		content, err = report.RenderXLSX(sheet)
	}
	if err != nil {
		uc.log.Errorf("Use Case: Failed to render %s report for vendor %d: %v", format, vendorID, err)
		return nil, nil, fmt.Errorf("render report: %w", err)
	}

	uc.log.WithFields(logrus.Fields{"vendor_id": vendorID, "format": format, "bytes": len(content)}).Info("Use Case: Report generated")
	return &domain.Report{
		VendorID:    vendorID,
		FileName:    vendor.Name + "_report" + format.Extension(),
		Format:      format,
		ContentType: format.ContentType(),
		Content:     content,
		Omitted:     sheet.Omitted,
	}, vendor, nil
}

func (uc *reportUseCase) ExportReport(ctx context.Context, vendorID int, format domain.ReportFormat) (string, error) {
	rep, vendor, err := uc.generate(ctx, vendorID, format)
	if err != nil {
		return "", err
	}
	name, err := uc.store.Save(vendor.Name, rep.Format.Extension(), rep.Content)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to store report for vendor %d: %v", vendorID, err)
		return "", fmt.Errorf("store report: %w", domain.ErrPersistence)
	}
	return name, nil
}

func (uc *reportUseCase) OpenReport(ctx context.Context, name string) (*domain.Report, error) {
	format, ok := domain.ParseReportFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	if !ok || filepath.Ext(name) == "" {
		uc.log.Warnf("Use Case: Rejected report request for '%s'", name)
		return nil, domain.ErrNotFound
	}
	content, err := uc.store.Open(name)
	if err != nil {
		return nil, storeError(uc.log, "open report", err)
	}
	return &domain.Report{
		FileName:    name,
		Format:      format,
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}
