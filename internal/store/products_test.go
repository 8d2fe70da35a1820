package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/bizness/internal/validation"
)

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s.DB(), "u1", "Sarah Johnson", "sarah@bizness.com")
	b := seedBusiness(t, s, "u1", "Kopi Nusantara")

	p, err := s.CreateProduct(ctx, b.ID, validation.ProductInput{Name: " Latte ", Category: "Coffee", HPP: 13000, SellingPrice: 28000, Stock: 100})
	require.NoError(t, err)
	assert.Equal(t, "Latte", p.Name)
	assert.InDelta(t, 53.5714, p.MarginPercent, 1e-3)

	p, err = s.UpdateProduct(ctx, b.ID, p.ID, validation.ProductInput{Name: "Latte", Category: "Coffee", HPP: 13000, SellingPrice: 0, Stock: 90})
	require.NoError(t, err)
	assert.Equal(t, int64(90), p.Stock)
	assert.Zero(t, p.MarginPercent, "margin is 0 when the price is 0")

	require.NoError(t, s.DeleteProduct(ctx, b.ID, p.ID))
	_, err = s.GetProduct(ctx, b.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s.DB(), "u1", "Sarah Johnson", "sarah@bizness.com")
	b := seedBusiness(t, s, "u1", "Kopi Nusantara")

	_, err := s.CreateProduct(ctx, b.ID, validation.ProductInput{Name: "", HPP: -5, Stock: 1.5})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.GreaterOrEqual(t, len(verrs), 3)

	products, err := s.ListProducts(ctx, b.ID, "")
	require.NoError(t, err)
	assert.Empty(t, products, "rejected records are never persisted")
}

func TestCreateProductUnknownBusiness(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateProduct(context.Background(), "missing", validation.ProductInput{Name: "Espresso", Category: "Coffee"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s.DB(), "u1", "Sarah Johnson", "sarah@bizness.com")
	b := seedBusiness(t, s, "u1", "Kopi Nusantara")

	for _, in := range []validation.ProductInput{
		{Name: "Espresso", Category: "Coffee", HPP: 8000, SellingPrice: 18000, Stock: 150},
		{Name: "Matcha Latte", Category: "Tea", HPP: 14000, SellingPrice: 30000, Stock: 60},
		{Name: "Croissant", Category: "Pastry", HPP: 15000, SellingPrice: 35000, Stock: 25},
	} {
		_, err := s.CreateProduct(ctx, b.ID, in)
		require.NoError(t, err)
	}

	all, err := s.ListProducts(ctx, b.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Espresso", all[0].Name, "insertion order")

	byName, err := s.ListProducts(ctx, b.ID, "latte")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Matcha Latte", byName[0].Name)

	byCategory, err := s.ListProducts(ctx, b.ID, " PASTRY ")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Croissant", byCategory[0].Name)

	for _, q := range []string{"_", "%", "e_p", "esp%"} {
		got, err := s.ListProducts(ctx, b.ID, q)
		require.NoError(t, err)
		assert.Empty(t, got, "%q is matched literally", q)
	}

	_, err = s.CreateProduct(ctx, b.ID, validation.ProductInput{Name: "50% Off Bundle", Category: "Promo", HPP: 1000, SellingPrice: 2000, Stock: 5})
	require.NoError(t, err)
	promo, err := s.ListProducts(ctx, b.ID, "50%")
	require.NoError(t, err)
	require.Len(t, promo, 1)
	assert.Equal(t, "50% Off Bundle", promo[0].Name)
}

func TestListProductsQueryError(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("b1", "", "", "").
		WillReturnError(errors.New("disk I/O error"))

	s, err := New(database)
	require.NoError(t, err)

	_, err = s.ListProducts(context.Background(), "b1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query products")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsScanError(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	rows := sqlmock.NewRows([]string{"id", "business_id", "name", "category", "hpp", "selling_price", "stock"}).
		AddRow("p1", "b1", "Espresso", "Coffee", "not-a-number", 18000, 150)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(rows)

	s, err := New(database)
	require.NoError(t, err)

	_, err = s.ListProducts(context.Background(), "b1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan product")
	assert.NoError(t, mock.ExpectationsWereMet())
}
