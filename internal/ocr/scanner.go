package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
)

// Upload is a receipt image submitted for extraction.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Scanner extracts a receipt into its raw JSON payload. The payload is
// untrusted and always goes through validation before use.
type Scanner interface {
	Extract(ctx context.Context, upload Upload) (json.RawMessage, error)
}

var mockVendors = []string{"PT. Supply Wholesale", "Berkah Jaya", "Indogrosir", "Mitra Pangan"}

type mockItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

var mockItems = []mockItem{
	{Name: "Coffee Beans (1kg)", Price: 150000},
	{Name: "Milk (5L)", Price: 75000},
	{Name: "Sugar (2kg)", Price: 28000},
	{Name: "Paper Cups (100pcs)", Price: 45000},
	{Name: "Vanilla Syrup", Price: 90000},
}

// mockItemsPerReceipt is how many distinct items a mocked receipt lists.
const mockItemsPerReceipt = 3

// MockScanner fabricates plausible supplier receipts without reading the
// image. It is safe for concurrent use.
type MockScanner struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	delay time.Duration
}

// NewMockScanner returns a scanner drawing from rng. delay simulates
// processing time.
func NewMockScanner(rng *rand.Rand, delay time.Duration) *MockScanner {
	return &MockScanner{rng: rng, now: time.Now, delay: delay}
}

// Extract returns a receipt with a random vendor and three random items.
func (m *MockScanner) Extract(ctx context.Context, _ Upload) (json.RawMessage, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	m.mu.Lock()
	vendor := mockVendors[m.rng.IntN(len(mockVendors))]
	perm := m.rng.Perm(len(mockItems))
	m.mu.Unlock()

	now := m.now()
	items := make([]mockItem, 0, mockItemsPerReceipt)
	var total float64
	for _, i := range perm[:mockItemsPerReceipt] {
		items = append(items, mockItems[i])
		total += mockItems[i].Price
	}

	raw, err := json.Marshal(map[string]any{
		"id":     strconv.FormatInt(now.UnixMilli(), 10),
		"date":   now.Format(time.DateOnly),
		"vendor": vendor,
		"items":  items,
		"total":  total,
	})
	if err != nil {
		return nil, fmt.Errorf("encode mock receipt: %w", err)
	}
	return raw, nil
}
