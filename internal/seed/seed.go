// Package seed loads the fixture data used by the seed commands.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	username string
	password string
	access   domain.AccessLevel
}

type product struct {
	vendorID int
	name     string
	image    string
	itemCode string
	barcode  string
	quantity domain.Scaled
	size     domain.Scaled
	stock    domain.Scaled
	unit     string
}

var (
	baseUsers = []user{
		{username: "admin", password: "admin123", access: domain.AccessAdministrator},
		{username: "user", password: "user123", access: domain.AccessUser},
	}
	baseVendors    = []string{"Walmart", "Hy-Vee", "ALDI"}
	baseCategories = []string{"Meat", "Seafood", "Fruit", "Vegetables"}
	baseProducts   = []product{
		{vendorID: 1, name: "Apple", image: "/product_images/apple.png", itemCode: "A123", barcode: "123-456-789", quantity: 100, size: 1000, stock: 500, unit: "pc"},
		{vendorID: 2, name: "Orange", image: "/product_images/orange.png", itemCode: "B456", barcode: "987-654-321", quantity: 100, size: 2518, stock: 1200, unit: "oz"},
		{vendorID: 3, name: "Banana", image: "/product_images/banana.png", itemCode: "C789", barcode: "111-222-333", quantity: 100, size: 1515, stock: 1225, unit: "lb"},
	}

	// categoriesV2 replaces the base categories once vendors reference them.
	categoriesV2 = []string{"Meat", "Produce", "Grocery"}
)

type Seeder struct {
	db       *sql.DB
	hashCost int
	log      *logrus.Logger
}

func NewSeeder(db *sql.DB, logger *logrus.Logger) *Seeder {
	return &Seeder{db: db, hashCost: bcrypt.DefaultCost, log: logger}
}

// SeedBase fills a freshly migrated base schema. It runs in a single
// transaction.
func (s *Seeder) SeedBase(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range baseUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), s.hashCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.username, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (username, password_hash, access) VALUES ($1, $2, $3)`,
				u.username, string(hash), string(u.access)); err != nil {
				return fmt.Errorf("seed user %s: %w", u.username, err)
			}
		}
		s.log.Infof("Seed: Seeded %d users", len(baseUsers))

		for _, name := range baseVendors {
			if _, err := tx.ExecContext(ctx, `INSERT INTO vendors (name) VALUES ($1)`, name); err != nil {
				return fmt.Errorf("seed vendor %s: %w", name, err)
			}
		}
		s.log.Infof("Seed: Seeded %d vendors", len(baseVendors))

		for i, name := range baseCategories {
			if _, err := tx.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, i+1, name); err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		}
		if err := resetCategorySequence(ctx, tx); err != nil {
			return err
		}
		s.log.Infof("Seed: Seeded %d categories", len(baseCategories))

		for _, p := range baseProducts {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO products (vendor_id, name, image, itemcode, barcode, quantity, size, stock, unit)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.vendorID, p.name, p.image, p.itemCode, p.barcode, int64(p.quantity), int64(p.size), int64(p.stock), p.unit); err != nil {
				return fmt.Errorf("seed product %s: %w", p.name, err)
			}
		}
		s.log.Infof("Seed: Seeded %d products", len(baseProducts))
		return nil
	})
}

// SeedCategoriesV2 replaces the category list after the vendor details
// migration. Vendors pointing at a removed category fall back to id 1.
func (s *Seeder) SeedCategoriesV2(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i, name := range categoriesV2 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO categories (id, name) VALUES ($1, $2)
				 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, i+1, name); err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		}
		last := len(categoriesV2)
		if _, err := tx.ExecContext(ctx, `UPDATE vendors SET category = 1 WHERE category > $1`, last); err != nil {
			return fmt.Errorf("reassign vendor categories: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id > $1`, last); err != nil {
			return fmt.Errorf("remove old categories: %w", err)
		}
		if err := resetCategorySequence(ctx, tx); err != nil {
			return err
		}
		s.log.Infof("Seed: Categories replaced with %v", categoriesV2)
		return nil
	})
}

func resetCategorySequence(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('categories', 'id'), GREATEST((SELECT MAX(id) FROM categories), 1))`)
	if err != nil {
		return fmt.Errorf("reset category sequence: %w", err)
	}
	return nil
}

func (s *Seeder) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Errorf("Seed: Rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}
