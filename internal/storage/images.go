package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cfresh_inventory/internal/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ImagePrefix   = "/product_images/"
	MaxImageBytes = domain.MaxImageBytes
	sniffBytes    = 3072
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/svg+xml"}

// ImageStore keeps product images under <publicDir>/product_images. Stored
// paths are web paths relative to publicDir.
type ImageStore struct {
	publicDir string
	log       *logrus.Logger
}

func NewImageStore(publicDir string, logger *logrus.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(publicDir, strings.Trim(ImagePrefix, "/")), 0o755); err != nil {
		return nil, fmt.Errorf("could not create image directory: %w", err)
	}
	return &ImageStore{publicDir: publicDir, log: logger}, nil
}

// Save sniffs the upload, rejects anything that is not jpeg, png or svg,
// and writes it under a fresh uuid. The extension follows the detected type.
func (s *ImageStore) Save(upload *domain.Upload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", fmt.Errorf("no image provided")
	}
	if upload.Size > MaxImageBytes {
		return "", domain.ErrImageTooLarge
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("could not read image: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", domain.ErrUnsupportedImage
	}

	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		s.log.Warnf("Storage: Rejected image '%s' with detected type %s", upload.Filename, mtype.String())
		return "", domain.ErrUnsupportedImage
	}

	name := uuid.NewString() + mtype.Extension()
	webPath := ImagePrefix + name
	target := filepath.Join(s.publicDir, filepath.FromSlash(strings.TrimPrefix(webPath, "/")))

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("could not create image file: %w", err)
	}
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), upload.Content), MaxImageBytes+1)
	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > MaxImageBytes {
		err = domain.ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(target)
		if errors.Is(err, domain.ErrImageTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("could not write image file: %w", err)
	}

	s.log.WithFields(logrus.Fields{"path": webPath, "type": mtype.String(), "bytes": written}).Info("Storage: Image saved")
	return webPath, nil
}

// Remove deletes a stored image. Empty paths and missing files are not errors.
func (s *ImageStore) Remove(webPath string) error {
	if webPath == "" {
		return nil
	}
	target, err := s.resolve(webPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove image %s: %w", webPath, err)
	}
	s.log.Infof("Storage: Image %s removed", webPath)
	return nil
}

func (s *ImageStore) resolve(webPath string) (string, error) {
	clean := path.Clean("/" + webPath)
	if !strings.HasPrefix(clean, ImagePrefix) {
		return "", fmt.Errorf("image path %q is outside the image directory", webPath)
	}
	return filepath.Join(s.publicDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
