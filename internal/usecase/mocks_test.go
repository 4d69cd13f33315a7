package usecase

import (
	"context"
	"io"

	"cfresh_inventory/internal/cache"
	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type MockVendorRepo struct {
	Vendors     map[int]*domain.Vendor
	Products    map[int]int
	Images      map[int][]string
	Page        *domain.Page[domain.Vendor]
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	SearchErr   error
	GetErr      error
	SearchCalls int
	OnSearch    func()

	lastCreated    *domain.Vendor
	lastUpdated    *domain.Vendor
	lastDeletedID  int
	lastQuery      string
	lastPage       int
	lastCategoryID int
}

func (m *MockVendorRepo) CreateVendor(_ context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	m.lastCreated = v
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	v.ID = 100
	return v, nil
}

func (m *MockVendorRepo) GetVendorByID(_ context.Context, id int) (*domain.Vendor, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if v, ok := m.Vendors[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockVendorRepo) UpdateVendor(_ context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	m.lastUpdated = v
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return v, nil
}

func (m *MockVendorRepo) DeleteVendor(_ context.Context, id int) ([]string, error) {
	m.lastDeletedID = id
	if m.DeleteErr != nil {
		return nil, m.DeleteErr
	}
	return m.Images[id], nil
}

func (m *MockVendorRepo) SearchVendors(_ context.Context, query string, page int) (*domain.Page[domain.Vendor], error) {
	m.SearchCalls++
	m.lastQuery = query
	m.lastPage = page
	result := m.Page
	if m.OnSearch != nil {
		m.OnSearch()
	}
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return result, nil
}

func (m *MockVendorRepo) ListVendorsByCategory(_ context.Context, categoryID int) ([]domain.Vendor, error) {
	m.lastCategoryID = categoryID
	var out []domain.Vendor
	for _, v := range m.Vendors {
		if v.CategoryID == categoryID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *MockVendorRepo) ListVendors(context.Context) ([]domain.Vendor, error) {
	var out []domain.Vendor
	for _, v := range m.Vendors {
		out = append(out, *v)
	}
	return out, nil
}

func (m *MockVendorRepo) CountVendorProducts(_ context.Context, vendorID int) (int, error) {
	return m.Products[vendorID], nil
}

type MockCategoryRepo struct {
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryRepo) ListCategories(context.Context) ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *MockCategoryRepo) GetCategoryByID(_ context.Context, id int) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type MockProductRepo struct {
	ProductsByID map[int]*domain.Product
	ByVendor     map[int][]domain.Product
	Page         *domain.Page[domain.Product]
	CreateErr    error
	UpdateErr    error
	StockErr     error
	DeleteErr    error
	DeleteImage  string
	ListErr      error
	Prev, Next   *domain.Product

	lastCreated   *domain.Product
	lastUpdated   *domain.Product
	lastStockID   int
	lastStock     domain.Scaled
	lastDeletedID int
}

func (m *MockProductRepo) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.lastCreated = p
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	p.ID = 500
	return p, nil
}

func (m *MockProductRepo) GetProductByID(_ context.Context, id int) (*domain.Product, error) {
	if p, ok := m.ProductsByID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockProductRepo) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.lastUpdated = p
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return p, nil
}

func (m *MockProductRepo) UpdateStock(_ context.Context, id int, stock domain.Scaled) error {
	m.lastStockID = id
	m.lastStock = stock
	return m.StockErr
}

func (m *MockProductRepo) DeleteProduct(_ context.Context, id int) (string, error) {
	m.lastDeletedID = id
	if m.DeleteErr != nil {
		return "", m.DeleteErr
	}
	return m.DeleteImage, nil
}

func (m *MockProductRepo) SearchProducts(context.Context, string, int) (*domain.Page[domain.Product], error) {
	return m.Page, nil
}

func (m *MockProductRepo) ListProductsByVendor(_ context.Context, vendorID int) ([]domain.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ByVendor[vendorID], nil
}

func (m *MockProductRepo) GetProductNeighbors(context.Context, int, int) (*domain.Product, *domain.Product, error) {
	return m.Prev, m.Next, nil
}

type MockImageStore struct {
	SaveErr   error
	RemoveErr error
	NextPath  string

	saved   []string
	removed []string
}

func (m *MockImageStore) Save(upload *domain.Upload) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	path := m.NextPath
	if path == "" {
		path = "/product_images/new.png"
	}
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *MockImageStore) Remove(path string) error {
	m.removed = append(m.removed, path)
	return m.RemoveErr
}

type MockReportStore struct {
	Files   map[string][]byte
	SaveErr error

	lastVendorName string
	lastExt        string
}

func (m *MockReportStore) Save(vendorName, ext string, content []byte) (string, error) {
	m.lastVendorName = vendorName
	m.lastExt = ext
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	name := vendorName + "_report_test" + ext
	if m.Files == nil {
		m.Files = map[string][]byte{}
	}
	m.Files[name] = content
	return name, nil
}

func (m *MockReportStore) Open(name string) ([]byte, error) {
	if content, ok := m.Files[name]; ok {
		return content, nil
	}
	return nil, domain.ErrNotFound
}

type MockListingCache struct {
	stored      []any
	invalidated []string
}

func (m *MockListingCache) Get(_ context.Context, entity, key string, dest any) (cache.Slot, bool) {
	return cache.Slot{}, false
}

func (m *MockListingCache) Set(_ context.Context, _ cache.Slot, value any) {
	m.stored = append(m.stored, value)
}

func (m *MockListingCache) Invalidate(_ context.Context, entities ...string) {
	m.invalidated = append(m.invalidated, entities...)
}

type MockUserRepo struct {
	Users map[string]*domain.User
	Err   error
}

func (m *MockUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if u, ok := m.Users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}
