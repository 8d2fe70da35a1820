package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() ProductInput {
	return ProductInput{Name: "Espresso", Category: "Coffee", HPP: 8000, SellingPrice: 18000, Stock: 150}
}

func TestValidateProduct_Accepts(t *testing.T) {
	in := validProduct()
	in.Name = "  Espresso  "

	p, err := ValidateProduct(in)

	require.NoError(t, err)
	assert.Equal(t, "Espresso", p.Name)
	assert.Equal(t, int64(150), p.Stock)
}

func TestValidateProduct_ReportsEveryBadField(t *testing.T) {
	_, err := ValidateProduct(ProductInput{Name: "", HPP: -5, Stock: 1.5})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.GreaterOrEqual(t, len(verrs), 3)
	assert.Contains(t, verrs, FieldError{Field: "name", Message: "Product name is required"})
	assert.Contains(t, verrs, FieldError{Field: "hpp", Message: "HPP cannot be negative"})
	assert.Contains(t, verrs, FieldError{Field: "stock", Message: "Stock must be a whole number"})
	assert.True(t, verrs.Has("category"))
	assert.False(t, verrs.Has("selling_price"))
}

func TestValidateProduct_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		field   string
		message string
	}{
		{"blank name", func(p *ProductInput) { p.Name = "   " }, "name", "Product name is required"},
		{"long name", func(p *ProductInput) { p.Name = strings.Repeat("a", 256) }, "name", "Product name must be less than 255 characters"},
		{"long category", func(p *ProductInput) { p.Category = strings.Repeat("c", 101) }, "category", "Category must be less than 100 characters"},
		{"nan hpp", func(p *ProductInput) { p.HPP = math.NaN() }, "hpp", "HPP must be a valid number"},
		{"infinite price", func(p *ProductInput) { p.SellingPrice = math.Inf(1) }, "selling_price", "Selling price must be a valid number"},
		{"huge price", func(p *ProductInput) { p.SellingPrice = 1e13 }, "selling_price", "Selling price value is too large"},
		{"negative stock", func(p *ProductInput) { p.Stock = -1 }, "stock", "Stock cannot be negative"},
		{"huge stock", func(p *ProductInput) { p.Stock = 1e10 }, "stock", "Stock value is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProduct()
			tt.mutate(&in)

			_, err := ValidateProduct(in)

			var verrs Errors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, Errors{{Field: tt.field, Message: tt.message}}, verrs)
		})
	}
}

func TestValidateProduct_UpperBoundsInclusive(t *testing.T) {
	in := validProduct()
	in.HPP = MaxAmount
	in.SellingPrice = MaxAmount
	in.Stock = MaxStock

	_, err := ValidateProduct(in)
	assert.NoError(t, err)
}

func TestValidateProductForm(t *testing.T) {
	p, err := ValidateProductForm(ProductForm{Name: "Latte", Category: "Coffee", HPP: "13000", SellingPrice: "28000", Stock: "100"})
	require.NoError(t, err)
	assert.Equal(t, 28000.0, p.SellingPrice)

	_, err = ValidateProductForm(ProductForm{Name: "Latte", Category: "Coffee", HPP: "abc", SellingPrice: "28000", Stock: "2.5"})
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("hpp"))
	assert.True(t, verrs.Has("stock"))
	assert.Contains(t, verrs.Error(), "hpp: HPP must be a valid number")
}
