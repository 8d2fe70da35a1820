package validation

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownVendor is used when a receipt has no readable vendor.
const UnknownVendor = "Unknown Vendor"

// OCRItem is one purchased line read from a receipt.
type OCRItem struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Price float64 `json:"price" validate:"finite,gte=0,lte=999999999999"`
}

// OCRDocument is a receipt extraction accepted for import.
type OCRDocument struct {
	ID     string    `json:"id"`
	Date   string    `json:"date" validate:"max=50"`
	Vendor string    `json:"vendor" validate:"max=255"`
	Items  []OCRItem `json:"items" validate:"dive"`
	Total  float64   `json:"total" validate:"finite,gte=0,lte=999999999999"`
}

var ocrMessages = messages{
	"name.required": "Item name is required",
	"name.max":      "Item name must be less than 255 characters",
	"price.finite":  "Price must be a valid number",
	"price.gte":     "Price cannot be negative",
	"price.lte":     "Price value is too large",
	"date.max":      "Date too long",
	"vendor.max":    "Vendor name too long",
	"total.finite":  "Total must be a valid number",
	"total.gte":     "Total cannot be negative",
	"total.lte":     "Total value is too large",
}

// ValidateOCRItem trims the item name and rejects invalid items with Errors.
func ValidateOCRItem(item OCRItem) (OCRItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := check(item, ocrMessages); err != nil {
		return OCRItem{}, err
	}
	return item, nil
}

// ValidateOCRDocument applies field-level validation to a complete document.
func ValidateOCRDocument(doc OCRDocument) (OCRDocument, error) {
	doc.Vendor = strings.TrimSpace(doc.Vendor)
	if doc.Vendor == "" {
		doc.Vendor = UnknownVendor
	}
	if doc.Items == nil {
		doc.Items = []OCRItem{}
	}
	for i := range doc.Items {
		doc.Items[i].Name = strings.TrimSpace(doc.Items[i].Name)
	}

	if err := check(doc, ocrMessages); err != nil {
		return OCRDocument{}, err
	}
	return doc, nil
}

// DefaultOCRDocument is the empty receipt used when an extraction is unusable.
func DefaultOCRDocument(now time.Time) OCRDocument {
	return OCRDocument{
		ID:     uuid.NewString(),
		Date:   now.Format(time.DateOnly),
		Vendor: UnknownVendor,
		Items:  []OCRItem{},
		Total:  0,
	}
}

// rawOCRDocument mirrors the extraction payload. Pointers tell absent
// required fields apart from zero values; the optional fields stay raw so an
// explicit null can be told apart from an omitted key.
type rawOCRDocument struct {
	ID     *string         `json:"id"`
	Date   *string         `json:"date"`
	Vendor json.RawMessage `json:"vendor"`
	Items  json.RawMessage `json:"items"`
	Total  *float64        `json:"total"`
}

// ParseOCRDocument turns an upstream extraction into a document. It never
// fails: if raw is not a JSON object, misses a required field, or any field
// is invalid, the whole record falls back to DefaultOCRDocument. The boolean
// reports whether the extraction itself was accepted.
func ParseOCRDocument(raw []byte, now time.Time) (OCRDocument, bool) {
	var r rawOCRDocument
	if err := json.Unmarshal(raw, &r); err != nil {
		return DefaultOCRDocument(now), false
	}
	if r.ID == nil || r.Date == nil || r.Total == nil {
		return DefaultOCRDocument(now), false
	}

	doc := OCRDocument{ID: *r.ID, Date: *r.Date, Total: *r.Total}
	if !decodeOptional(r.Vendor, &doc.Vendor) || !decodeOptional(r.Items, &doc.Items) {
		return DefaultOCRDocument(now), false
	}

	doc, err := ValidateOCRDocument(doc)
	if err != nil {
		return DefaultOCRDocument(now), false
	}
	return doc, true
}

// decodeOptional fills dst from an optional field. An omitted field leaves
// dst untouched; null or a value of the wrong type is rejected.
func decodeOptional(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return true
	}
	if string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
