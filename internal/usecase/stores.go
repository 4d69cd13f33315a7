package usecase

import (
	"errors"
	"fmt"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

// ImageStore persists product images and returns the path stored on the row.
type ImageStore interface {
	Save(upload *domain.Upload) (string, error)
	Remove(path string) error
}

type ReportStore interface {
	Save(vendorName, ext string, content []byte) (string, error)
	Open(name string) ([]byte, error)
}

// storeError passes domain errors through and hides everything else
// behind ErrPersistence after logging it.
func storeError(log *logrus.Logger, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	log.Errorf("Use Case: %s failed: %v", op, err)
	return fmt.Errorf("%s: %w", op, domain.ErrPersistence)
}

func cacheKey(query string, page int) string {
	return fmt.Sprintf("%d:%s", page, query)
}
