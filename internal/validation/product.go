package validation

import (
	"math"
	"strconv"
	"strings"
)

// ProductInput is a product as submitted, before validation. Stock is a
// float so fractional values can be rejected rather than truncated.
type ProductInput struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Category     string  `json:"category" validate:"required,max=100"`
	HPP          float64 `json:"hpp" validate:"finite,gte=0,lte=999999999999"`
	SellingPrice float64 `json:"selling_price" validate:"finite,gte=0,lte=999999999999"`
	Stock        float64 `json:"stock" validate:"finite,whole,gte=0,lte=999999999"`
}

// Product is a product that passed validation and may be persisted.
type Product struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	HPP          float64 `json:"hpp"`
	SellingPrice float64 `json:"selling_price"`
	Stock        int64   `json:"stock"`
}

var productMessages = messages{
	"name.required":        "Product name is required",
	"name.max":             "Product name must be less than 255 characters",
	"category.required":    "Category is required",
	"category.max":         "Category must be less than 100 characters",
	"hpp.finite":           "HPP must be a valid number",
	"hpp.gte":              "HPP cannot be negative",
	"hpp.lte":              "HPP value is too large",
	"selling_price.finite": "Selling price must be a valid number",
	"selling_price.gte":    "Selling price cannot be negative",
	"selling_price.lte":    "Selling price value is too large",
	"stock.finite":         "Stock must be a whole number",
	"stock.whole":          "Stock must be a whole number",
	"stock.gte":            "Stock cannot be negative",
	"stock.lte":            "Stock value is too large",
}

// ValidateProduct trims text fields and rejects the record with Errors when
// any field is out of bounds. Nothing is coerced.
func ValidateProduct(in ProductInput) (Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if err := check(in, productMessages); err != nil {
		return Product{}, err
	}

	return Product{
		Name:         in.Name,
		Category:     in.Category,
		HPP:          in.HPP,
		SellingPrice: in.SellingPrice,
		Stock:        int64(in.Stock),
	}, nil
}

// ProductForm carries the product dialog fields exactly as typed.
type ProductForm struct {
	Name         string
	Category     string
	HPP          string
	SellingPrice string
	Stock        string
}

// ValidateProductForm parses the numeric text fields and validates the
// result. Text that is not a number is reported as an invalid value.
func ValidateProductForm(form ProductForm) (Product, error) {
	return ValidateProduct(ProductInput{
		Name:         form.Name,
		Category:     form.Category,
		HPP:          parseNumber(form.HPP),
		SellingPrice: parseNumber(form.SellingPrice),
		Stock:        parseNumber(form.Stock),
	})
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
