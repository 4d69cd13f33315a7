package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cfresh_inventory/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ReportStore writes generated reports into a single directory and serves
// them back by base name only.
type ReportStore struct {
	dir string
	now func() time.Time
	log *logrus.Logger
}

func NewReportStore(dir string, logger *logrus.Logger) (*ReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create reports directory: %w", err)
	}
	return &ReportStore{dir: dir, now: time.Now, log: logger}, nil
}

// SafeName reduces s to characters that are safe in a file name.
func SafeName(s string) string {
	out := strings.Trim(unsafeNameChars.ReplaceAllString(strings.TrimSpace(s), "_"), "._")
	if out == "" {
		return "vendor"
	}
	return out
}

// Save writes content to <vendor>_report_<timestamp>_<id><ext>. The file
// appears under its final name only once it is complete.
func (s *ReportStore) Save(vendorName, ext string, content []byte) (string, error) {
	name := fmt.Sprintf("%s_report_%s_%s%s",
		SafeName(vendorName),
		s.now().UTC().Format("20060102T150405"),
		strings.SplitN(uuid.NewString(), "-", 2)[0],
		ext,
	)

	tmp, err := os.CreateTemp(s.dir, ".report-*")
	if err != nil {
		return "", fmt.Errorf("could not create temporary report file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, filepath.Join(s.dir, name))
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("could not write report %s: %w", name, err)
	}

	s.log.WithFields(logrus.Fields{"file": name, "bytes": len(content)}).Info("Storage: Report saved")
	return name, nil
}

// Open reads a previously saved report. Names that are not plain base
// names inside the reports directory are treated as missing.
func (s *ReportStore) Open(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		s.log.Warnf("Storage: Rejected report name %q", name)
		return nil, fmt.Errorf("report %q: %w", name, domain.ErrNotFound)
	}
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("report %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("could not read report %s: %w", name, err)
	}
	return content, nil
}
