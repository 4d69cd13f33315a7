package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

const productColumns = `
        p.id, p.vendor_id, COALESCE(v.name, ''), p.name, COALESCE(p.image, ''),
        p.itemcode, p.barcode, p.quantity, p.size, p.stock, p.unit,
        p.created_at, p.updated_at`

const productFrom = `
        FROM products p
        LEFT JOIN vendors v ON v.id = p.vendor_id`

// Scaled columns are matched on their displayed value, not the stored hundredths.
const productSearchWhere = `
        WHERE p.name ILIKE $1
           OR COALESCE(v.name, '') ILIKE $1
           OR p.itemcode ILIKE $1
           OR p.barcode ILIKE $1
           OR p.unit ILIKE $1
           OR (p.quantity / 100.0)::text ILIKE $1
           OR (p.size / 100.0)::text ILIKE $1
           OR (p.stock / 100.0)::text ILIKE $1
           OR p.created_at::text ILIKE $1
           OR p.updated_at::text ILIKE $1`

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.VendorID,
		&p.VendorName,
		&p.Name,
		&p.Image,
		&p.ItemCode,
		&p.Barcode,
		&p.Quantity,
		&p.Size,
		&p.Stock,
		&p.Unit,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (vendor_id, name, image, itemcode, barcode, quantity, size, stock, unit)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		product.VendorID,
		product.Name,
		nullString(product.Image),
		product.ItemCode,
		product.Barcode,
		product.Quantity,
		product.Size,
		product.Stock,
		product.Unit,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, r.mapWriteError(err, product, "create")
	}

	r.log.Infof("Repository: Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `
        WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found", id)
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return &p, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        UPDATE products
        SET vendor_id = $1, name = $2, image = $3, itemcode = $4, barcode = $5,
            quantity = $6, size = $7, stock = $8, unit = $9, updated_at = NOW()
        WHERE id = $10
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		product.VendorID,
		product.Name,
		nullString(product.Image),
		product.ItemCode,
		product.Barcode,
		product.Quantity,
		product.Size,
		product.Stock,
		product.Unit,
		product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found for update", product.ID)
			return nil, fmt.Errorf("product %d: %w", product.ID, domain.ErrNotFound)
		}
		return nil, r.mapWriteError(err, product, "update")
	}

	r.log.Infof("Repository: Product with ID %d updated successfully", product.ID)
	return product, nil
}

func (r *postgresProductRepository) mapWriteError(err error, product *domain.Product, op string) error {
	switch pqCode(err) {
	case pqForeignKeyViolation:
		r.log.Warnf("Repository: Vendor %d does not exist for product '%s'", product.VendorID, product.Name)
		return fmt.Errorf("vendor %d: %w", product.VendorID, domain.ErrMissingReference)
	case pqCheckViolation:
		r.log.Warnf("Repository: Check constraint violation for product '%s': %v", product.Name, err)
		return fmt.Errorf("product data constraint violation: %w", err)
	}
	r.log.Errorf("Repository: Failed to %s product '%s': %v", op, product.Name, err)
	return fmt.Errorf("could not %s product: %w", op, err)
}

func (r *postgresProductRepository) UpdateStock(ctx context.Context, id int, stock domain.Scaled) error {
	result, err := r.db.ExecContext(ctx, `UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`, stock, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to update stock for product %d: %v", id, err)
		return fmt.Errorf("could not update stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check updated stock rows: %w", err)
	}
	if affected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for stock update", id)
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	r.log.WithFields(logrus.Fields{"product_id": id, "stock": stock.Compact()}).Info("Repository: Stock updated")
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int) (string, error) {
	var image string
	err := r.db.QueryRowContext(ctx, `DELETE FROM products WHERE id = $1 RETURNING COALESCE(image, '')`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found for deletion", id)
			return "", fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to delete product %d: %v", id, err)
		return "", fmt.Errorf("could not delete product: %w", err)
	}
	r.log.Infof("Repository: Product with ID %d deleted successfully", id)
	return image, nil
}

func (r *postgresProductRepository) SearchProducts(ctx context.Context, query string, page int) (*domain.Page[domain.Product], error) {
	page = domain.ClampPage(page)
	pattern := containsPattern(query)

	countQuery := `SELECT COUNT(*)` + productFrom + productSearchWhere
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, pattern).Scan(&total); err != nil {
		r.log.Errorf("Repository: Failed to count products for query '%s': %v", query, err)
		return nil, fmt.Errorf("could not count products: %w", err)
	}

	listQuery := `SELECT` + productColumns + productFrom + productSearchWhere + `
        ORDER BY p.updated_at DESC, p.id DESC
        LIMIT $2 OFFSET $3`

	products, err := r.queryProducts(ctx, listQuery, pattern, domain.ProductPageSize, domain.Offset(page, domain.ProductPageSize))
	if err != nil {
		return nil, err
	}

	return &domain.Page[domain.Product]{
		Items:      products,
		Query:      query,
		Page:       page,
		Total:      total,
		TotalPages: domain.TotalPages(total, domain.ProductPageSize),
	}, nil
}

func (r *postgresProductRepository) ListProductsByVendor(ctx context.Context, vendorID int) ([]domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `
        WHERE p.vendor_id = $1
        ORDER BY p.id`
	return r.queryProducts(ctx, query, vendorID)
}

func (r *postgresProductRepository) GetProductNeighbors(ctx context.Context, id, vendorID int) (*domain.Product, *domain.Product, error) {
	prevQuery := `SELECT` + productColumns + productFrom + `
        WHERE p.vendor_id = $1 AND p.id < $2
        ORDER BY p.id DESC
        LIMIT 1`
	nextQuery := `SELECT` + productColumns + productFrom + `
        WHERE p.vendor_id = $1 AND p.id > $2
        ORDER BY p.id ASC
        LIMIT 1`

	prev, err := r.neighbor(ctx, prevQuery, vendorID, id)
	if err != nil {
		return nil, nil, err
	}
	next, err := r.neighbor(ctx, nextQuery, vendorID, id)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

func (r *postgresProductRepository) neighbor(ctx context.Context, query string, vendorID, id int) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, vendorID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Errorf("Repository: Failed to get neighbor of product %d: %v", id, err)
		return nil, fmt.Errorf("could not get neighboring product: %w", err)
	}
	return &p, nil
}

func (r *postgresProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("could not scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error iterating product rows: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
