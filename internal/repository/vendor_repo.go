package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

const vendorColumns = `
        v.id, v.name, v.category, COALESCE(c.name, ''),
        COALESCE(v.address, ''), COALESCE(v.phone, ''), COALESCE(v.salesman, ''),
        v.created_at, v.updated_at`

const vendorSearchWhere = `
        WHERE v.name ILIKE $1
           OR COALESCE(c.name, '') ILIKE $1
           OR COALESCE(v.address, '') ILIKE $1
           OR COALESCE(v.phone, '') ILIKE $1
           OR COALESCE(v.salesman, '') ILIKE $1
           OR v.created_at::text ILIKE $1
           OR v.updated_at::text ILIKE $1`

type postgresVendorRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresVendorRepository(db *sql.DB, logger *logrus.Logger) domain.VendorRepository {
	return &postgresVendorRepository{
		db:  db,
		log: logger,
	}
}

func scanVendor(row rowScanner) (domain.Vendor, error) {
	var v domain.Vendor
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.CategoryID,
		&v.CategoryName,
		&v.Address,
		&v.Phone,
		&v.Salesman,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

func (r *postgresVendorRepository) CreateVendor(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	query := `
        INSERT INTO vendors (name, category, address, phone, salesman)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		vendor.Name,
		vendor.CategoryID,
		nullString(vendor.Address),
		nullString(vendor.Phone),
		nullString(vendor.Salesman),
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return nil, r.mapWriteError(err, vendor, "create")
	}

	r.log.Infof("Repository: Vendor created successfully with ID: %d, Name: %s", vendor.ID, vendor.Name)
	return vendor, nil
}

func (r *postgresVendorRepository) GetVendorByID(ctx context.Context, id int) (*domain.Vendor, error) {
	query := `SELECT` + vendorColumns + `
        FROM vendors v
        LEFT JOIN categories c ON c.id = v.category
        WHERE v.id = $1`

	v, err := scanVendor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Vendor with ID %d not found", id)
			return nil, fmt.Errorf("vendor %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get vendor by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get vendor by id: %w", err)
	}
	return &v, nil
}

func (r *postgresVendorRepository) UpdateVendor(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	query := `
        UPDATE vendors
        SET name = $1, category = $2, address = $3, phone = $4, salesman = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		vendor.Name,
		vendor.CategoryID,
		nullString(vendor.Address),
		nullString(vendor.Phone),
		nullString(vendor.Salesman),
		vendor.ID,
	).Scan(&vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Vendor with ID %d not found for update", vendor.ID)
			return nil, fmt.Errorf("vendor %d: %w", vendor.ID, domain.ErrNotFound)
		}
		return nil, r.mapWriteError(err, vendor, "update")
	}

	r.log.Infof("Repository: Vendor with ID %d updated successfully", vendor.ID)
	return vendor, nil
}

func (r *postgresVendorRepository) mapWriteError(err error, vendor *domain.Vendor, op string) error {
	switch pqCode(err) {
	case pqUniqueViolation:
		r.log.Warnf("Repository: Vendor name '%s' already exists", vendor.Name)
		return fmt.Errorf("vendor %q: %w", vendor.Name, domain.ErrAlreadyExists)
	case pqForeignKeyViolation:
		r.log.Warnf("Repository: Category %d does not exist for vendor '%s'", vendor.CategoryID, vendor.Name)
		return fmt.Errorf("category %d: %w", vendor.CategoryID, domain.ErrMissingReference)
	}
	r.log.Errorf("Repository: Failed to %s vendor '%s': %v", op, vendor.Name, err)
	return fmt.Errorf("could not %s vendor: %w", op, err)
}

func (r *postgresVendorRepository) DeleteVendor(ctx context.Context, id int) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Repository: Failed to begin transaction for vendor %d delete: %v", id, err)
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	images, err := r.deleteVendorTx(ctx, tx, id)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Errorf("Repository: Failed to rollback vendor %d delete: %v", id, rbErr)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.log.Errorf("Repository: Failed to commit vendor %d delete: %v", id, err)
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	r.log.WithFields(logrus.Fields{"vendor_id": id, "products": len(images)}).Info("Repository: Vendor deleted with its products")
	return images, nil
}

func (r *postgresVendorRepository) deleteVendorTx(ctx context.Context, tx *sql.Tx, id int) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `DELETE FROM products WHERE vendor_id = $1 RETURNING COALESCE(image, '')`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete products of vendor %d: %v", id, err)
		return nil, fmt.Errorf("could not delete vendor products: %w", err)
	}
	images := []string{}
	for rows.Next() {
		var image string
		if err := rows.Scan(&image); err != nil {
			rows.Close()
			return nil, fmt.Errorf("could not scan deleted product image: %w", err)
		}
		if image != "" {
			images = append(images, image)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating deleted products: %w", err)
	}
	rows.Close()

	result, err := tx.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete vendor %d: %v", id, err)
		return nil, fmt.Errorf("could not delete vendor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not check deleted vendor rows: %w", err)
	}
	if affected == 0 {
		r.log.Warnf("Repository: Vendor with ID %d not found for deletion", id)
		return nil, fmt.Errorf("vendor %d: %w", id, domain.ErrNotFound)
	}
	return images, nil
}

func (r *postgresVendorRepository) SearchVendors(ctx context.Context, query string, page int) (*domain.Page[domain.Vendor], error) {
	page = domain.ClampPage(page)
	pattern := containsPattern(query)

	countQuery := `SELECT COUNT(*) FROM vendors v LEFT JOIN categories c ON c.id = v.category` + vendorSearchWhere
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, pattern).Scan(&total); err != nil {
		r.log.Errorf("Repository: Failed to count vendors for query '%s': %v", query, err)
		return nil, fmt.Errorf("could not count vendors: %w", err)
	}

	listQuery := `SELECT` + vendorColumns + `
        FROM vendors v
        LEFT JOIN categories c ON c.id = v.category` + vendorSearchWhere + `
        ORDER BY v.updated_at DESC, v.id DESC
        LIMIT $2 OFFSET $3`

	vendors, err := r.queryVendors(ctx, listQuery, pattern, domain.VendorPageSize, domain.Offset(page, domain.VendorPageSize))
	if err != nil {
		return nil, err
	}

	return &domain.Page[domain.Vendor]{
		Items:      vendors,
		Query:      query,
		Page:       page,
		Total:      total,
		TotalPages: domain.TotalPages(total, domain.VendorPageSize),
	}, nil
}

func (r *postgresVendorRepository) ListVendorsByCategory(ctx context.Context, categoryID int) ([]domain.Vendor, error) {
	query := `SELECT` + vendorColumns + `
        FROM vendors v
        LEFT JOIN categories c ON c.id = v.category
        WHERE v.category = $1
        ORDER BY v.name`
	return r.queryVendors(ctx, query, categoryID)
}

func (r *postgresVendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT` + vendorColumns + `
        FROM vendors v
        LEFT JOIN categories c ON c.id = v.category
        ORDER BY v.name`
	return r.queryVendors(ctx, query)
}

func (r *postgresVendorRepository) queryVendors(ctx context.Context, query string, args ...any) ([]domain.Vendor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repository: Failed to list vendors: %v", err)
		return nil, fmt.Errorf("could not list vendors: %w", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan vendor row: %v", err)
			return nil, fmt.Errorf("could not scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error iterating vendor rows: %v", err)
		return nil, fmt.Errorf("error iterating vendors: %w", err)
	}
	return vendors, nil
}

func (r *postgresVendorRepository) CountVendorProducts(ctx context.Context, vendorID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE vendor_id = $1`, vendorID).Scan(&count)
	if err != nil {
		r.log.Errorf("Repository: Failed to count products for vendor %d: %v", vendorID, err)
		return 0, fmt.Errorf("could not count vendor products: %w", err)
	}
	return count, nil
}
