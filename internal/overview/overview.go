// Package overview derives the dashboard figures of a business from its
// catalog and ledger.
package overview

import (
	"math"
	"sort"

	"github.com/Simplici0/bizness/internal/store"
	"github.com/Simplici0/bizness/internal/validation"
)

// LowStockThreshold is the stock level below which a product needs attention.
const LowStockThreshold = 10

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Products int    `json:"products"`
}

// Stats are the figures shown on the business overview.
type Stats struct {
	Revenue      float64         `json:"revenue"`
	Expenses     float64         `json:"expenses"`
	GrossProfit  float64         `json:"gross_profit"`
	ProductCount int             `json:"product_count"`
	LowStock     []store.Product `json:"low_stock"`
	Categories   []CategoryCount `json:"categories"`
}

// Compute sums sales into revenue and every other transaction, by absolute
// value, into expenses. Categories are sorted by product count, then name.
func Compute(products []store.Product, transactions []store.Transaction) Stats {
	stats := Stats{
		ProductCount: len(products),
		LowStock:     make([]store.Product, 0),
		Categories:   make([]CategoryCount, 0),
	}

	for _, t := range transactions {
		if t.Type == validation.TransactionSale {
			stats.Revenue += t.Amount
		} else {
			stats.Expenses += math.Abs(t.Amount)
		}
	}
	stats.GrossProfit = stats.Revenue - stats.Expenses

	counts := make(map[string]int)
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			stats.LowStock = append(stats.LowStock, p)
		}
		counts[p.Category]++
	}

	for category, n := range counts {
		stats.Categories = append(stats.Categories, CategoryCount{Category: category, Products: n})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if a.Products != b.Products {
			return a.Products > b.Products
		}
		return a.Category < b.Category
	})

	return stats
}
