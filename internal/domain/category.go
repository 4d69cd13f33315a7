package domain

import "context"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id int) (*Category, error)
}
