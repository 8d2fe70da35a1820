package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Simplici0/bizness/internal/store"
)

func TestCompute(t *testing.T) {
	products := []store.Product{
		{Name: "Espresso", Category: "Coffee", Stock: 150},
		{Name: "Latte", Category: "Coffee", Stock: 100},
		{Name: "Croissant", Category: "Pastry", Stock: 25},
		{Name: "Cheese Cake", Category: "Pastry", Stock: 8},
		{Name: "Earl Grey", Category: "Tea", Stock: 9},
		{Name: "Americano", Category: "Coffee", Stock: 10},
	}
	transactions := []store.Transaction{
		{Type: "sale", Amount: 2450000},
		{Type: "purchase", Amount: -850000},
		{Type: "sale", Amount: 1980000},
		{Type: "expense", Amount: -450000},
		{Type: "sale", Amount: 3120000},
	}

	stats := Compute(products, transactions)

	assert.Equal(t, 7550000.0, stats.Revenue)
	assert.Equal(t, 1300000.0, stats.Expenses)
	assert.Equal(t, 6250000.0, stats.GrossProfit)
	assert.Equal(t, 6, stats.ProductCount)

	var low []string
	for _, p := range stats.LowStock {
		low = append(low, p.Name)
	}
	assert.Equal(t, []string{"Cheese Cake", "Earl Grey"}, low, "stock of exactly 10 is not low")

	assert.Equal(t, []CategoryCount{
		{Category: "Coffee", Products: 3},
		{Category: "Pastry", Products: 2},
		{Category: "Tea", Products: 1},
	}, stats.Categories)
}

func TestCompute_ExpensesUseAbsoluteValues(t *testing.T) {
	stats := Compute(nil, []store.Transaction{
		{Type: "expense", Amount: 100},
		{Type: "purchase", Amount: -50},
	})

	assert.Equal(t, 150.0, stats.Expenses)
	assert.Equal(t, -150.0, stats.GrossProfit)
	assert.NotNil(t, stats.LowStock)
	assert.NotNil(t, stats.Categories)
}
