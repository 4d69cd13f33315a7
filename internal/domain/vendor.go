package domain

import (
	"context"
	"time"
)

type Vendor struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	CategoryID   int       `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Salesman     string    `json:"salesman"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type VendorRepository interface {
	CreateVendor(ctx context.Context, vendor *Vendor) (*Vendor, error)
	GetVendorByID(ctx context.Context, id int) (*Vendor, error)
	UpdateVendor(ctx context.Context, vendor *Vendor) (*Vendor, error)
	// DeleteVendor removes the vendor and all of its products in one
	// transaction and returns the image paths the products referenced.
	DeleteVendor(ctx context.Context, id int) ([]string, error)
	SearchVendors(ctx context.Context, query string, page int) (*Page[Vendor], error)
	ListVendorsByCategory(ctx context.Context, categoryID int) ([]Vendor, error)
	ListVendors(ctx context.Context) ([]Vendor, error)
	CountVendorProducts(ctx context.Context, vendorID int) (int, error)
}
