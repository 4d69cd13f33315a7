package delivery

import (
	"context"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/usecase"
)

type MockVendorUseCase struct {
	vendors     map[int]*domain.Vendor
	page        *domain.Page[domain.Vendor]
	count       int
	createErr   error
	updateErr   error
	deleteErr   error
	lastForm    usecase.VendorForm
	lastQuery   string
	lastPage    int
	deletedID   int
	createCalls int
}

func (m *MockVendorUseCase) CreateVendor(_ context.Context, form usecase.VendorForm) (*domain.Vendor, error) {
	m.createCalls++
	m.lastForm = form
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &domain.Vendor{ID: 10, Name: form.Name}, nil
}

func (m *MockVendorUseCase) UpdateVendor(_ context.Context, id int, form usecase.VendorForm) (*domain.Vendor, error) {
	m.lastForm = form
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &domain.Vendor{ID: id, Name: form.Name}, nil
}

func (m *MockVendorUseCase) DeleteVendor(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *MockVendorUseCase) GetVendor(_ context.Context, id int) (*domain.Vendor, error) {
	if v, ok := m.vendors[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockVendorUseCase) SearchVendors(_ context.Context, query string, page int) (*domain.Page[domain.Vendor], error) {
	m.lastQuery, m.lastPage = query, page
	if m.page == nil {
		return &domain.Page[domain.Vendor]{Query: query, Page: page, TotalPages: 1}, nil
	}
	return m.page, nil
}

func (m *MockVendorUseCase) ListVendorsByCategory(_ context.Context, categoryID int) ([]domain.Vendor, error) {
	var out []domain.Vendor
	for _, v := range m.vendors {
		if v.CategoryID == categoryID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *MockVendorUseCase) ListAllVendors(context.Context) ([]domain.Vendor, error) {
	var out []domain.Vendor
	for _, v := range m.vendors {
		out = append(out, *v)
	}
	return out, nil
}

func (m *MockVendorUseCase) VendorProductCount(context.Context, int) (int, error) {
	return m.count, nil
}

type MockProductUseCase struct {
	products    map[int]*domain.Product
	page        *domain.Page[domain.Product]
	createErr   error
	updateErr   error
	stockErr    error
	lastForm    usecase.ProductForm
	lastStock   usecase.StockForm
	lastUpload  []byte
	hadUpload   bool
	deletedID   int
	createCalls int
}

func (m *MockProductUseCase) CreateProduct(_ context.Context, form usecase.ProductForm, image *domain.Upload) (*domain.Product, error) {
	m.createCalls++
	m.record(form, image)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &domain.Product{ID: 20, Name: form.Name}, nil
}

func (m *MockProductUseCase) UpdateProduct(_ context.Context, id int, form usecase.ProductForm, image *domain.Upload) (*domain.Product, error) {
	m.record(form, image)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &domain.Product{ID: id, Name: form.Name}, nil
}

func (m *MockProductUseCase) record(form usecase.ProductForm, image *domain.Upload) {
	m.lastForm = form
	m.hadUpload = image != nil
	if image != nil {
		buf := make([]byte, image.Size)
		n, _ := image.Content.Read(buf)
		m.lastUpload = buf[:n]
	}
}

func (m *MockProductUseCase) EditStock(_ context.Context, _ int, form usecase.StockForm) error {
	m.lastStock = form
	return m.stockErr
}

func (m *MockProductUseCase) DeleteProduct(_ context.Context, id int) error {
	m.deletedID = id
	return nil
}

func (m *MockProductUseCase) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockProductUseCase) SearchProducts(_ context.Context, query string, page int) (*domain.Page[domain.Product], error) {
	if m.page == nil {
		return &domain.Page[domain.Product]{Query: query, Page: page, TotalPages: 1}, nil
	}
	return m.page, nil
}

func (m *MockProductUseCase) ListVendorProducts(_ context.Context, vendorID int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *MockProductUseCase) ProductNeighbors(_ context.Context, product *domain.Product) (*domain.Product, *domain.Product, error) {
	prev := m.products[product.ID-1]
	next := m.products[product.ID+1]
	return prev, next, nil
}

type MockCategoryUseCase struct {
	categories []domain.Category
	err        error
}

func (m *MockCategoryUseCase) ListCategories(context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *MockCategoryUseCase) GetCategory(_ context.Context, id int) (*domain.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			return &m.categories[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type MockAuthUseCase struct {
	users map[string]*domain.User
	err   error
}

func (m *MockAuthUseCase) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[username]
	if !ok || password != "secret123" {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

type MockReportUseCase struct {
	report     *domain.Report
	stored     map[string]*domain.Report
	err        error
	lastFormat domain.ReportFormat
}

func (m *MockReportUseCase) GenerateReport(_ context.Context, vendorID int, format domain.ReportFormat) (*domain.Report, error) {
	m.lastFormat = format
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *MockReportUseCase) ExportReport(_ context.Context, vendorID int, format domain.ReportFormat) (string, error) {
	m.lastFormat = format
	if m.err != nil {
		return "", m.err
	}
	return "Walmart_report_20260314T093000_ab12cd34" + format.Extension(), nil
}

func (m *MockReportUseCase) OpenReport(_ context.Context, name string) (*domain.Report, error) {
	if rep, ok := m.stored[name]; ok {
		return rep, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return nil, domain.ErrNotFound
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}
