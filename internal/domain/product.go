package domain

import (
	"context"
	"io"
	"time"
)

type Product struct {
	ID         int       `json:"id"`
	VendorID   int       `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	ItemCode   string    `json:"itemcode"`
	Barcode    string    `json:"barcode"`
	Quantity   Scaled    `json:"quantity"`
	Size       Scaled    `json:"size"`
	Stock      Scaled    `json:"stock"`
	Unit       string    `json:"unit"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MaxImageBytes is the largest product image accepted.
const MaxImageBytes = 5 << 20

// Upload is an image file received from a form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id int) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateStock(ctx context.Context, id int, stock Scaled) error
	// DeleteProduct returns the image path the deleted row referenced.
	DeleteProduct(ctx context.Context, id int) (string, error)
	SearchProducts(ctx context.Context, query string, page int) (*Page[Product], error)
	ListProductsByVendor(ctx context.Context, vendorID int) ([]Product, error)
	// GetProductNeighbors returns the products immediately before and
	// after id within the same vendor, ordered by id. Either may be nil.
	GetProductNeighbors(ctx context.Context, id, vendorID int) (*Product, *Product, error)
}
