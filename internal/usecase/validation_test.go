package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormMessages(t *testing.T) {
	v := newValidator()

	verr, err := validateForm(v, &ProductForm{
		Name:     "Ap",
		VendorID: "1",
		ItemCode: "A1",
		Barcode:  "B1",
		Quantity: "0",
		Size:     "1.5",
		Stock:    "-2",
		Unit:     "",
	}, "Missing Fields. Failed to create product.")
	require.NoError(t, err)
	require.NotNil(t, verr)

	assert.Equal(t, "Product name must be at least 3 characters", verr.First("productName"))
	assert.Equal(t, "Quantity must be greater than 0", verr.First("quantity"))
	assert.Equal(t, "Stock must be 0 or more", verr.First("stock"))
	assert.Equal(t, "Unit is required", verr.First("unit"))
	assert.Empty(t, verr.First("size"))
}

func TestValidateFormPasses(t *testing.T) {
	verr, err := validateForm(newValidator(), &StockForm{Stock: "0"}, "x")
	require.NoError(t, err)
	assert.Nil(t, verr)
}

func TestValidateFormRejectsValuesTooLargeToStore(t *testing.T) {
	testCases := []struct {
		name  string
		stock string
		want  string
	}{
		{name: "largest storable", stock: "92233720368547758.07"},
		{name: "one hundredth past the limit", stock: "92233720368547758.08", want: "Stock is too large"},
		{name: "exponent", stock: "1e40", want: "Stock is too large"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			verr, err := validateForm(newValidator(), &StockForm{Stock: tc.stock}, "x")
			require.NoError(t, err)
			if tc.want == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tc.want, verr.First("stock"))
		})
	}
}
