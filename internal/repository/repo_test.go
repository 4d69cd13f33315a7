package repository

import (
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *logrus.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return db, mock, log
}

var vendorRowColumns = []string{"id", "name", "category", "category_name", "address", "phone", "salesman", "created_at", "updated_at"}

var productRowColumns = []string{"id", "vendor_id", "vendor_name", "name", "image", "itemcode", "barcode", "quantity", "size", "stock", "unit", "created_at", "updated_at"}
