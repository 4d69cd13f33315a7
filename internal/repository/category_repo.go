package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			r.log.Errorf("Repository: Failed to scan category row: %v", err)
			return nil, fmt.Errorf("could not scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error iterating category rows: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`

	c := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Category with ID %d not found", id)
			return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return c, nil
}
