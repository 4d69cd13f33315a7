package usecase

import (
	"context"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, storeError(uc.log, "list categories", err)
	}
	return categories, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, storeError(uc.log, "get category", err)
	}
	return category, nil
}
