package pricing

import "math"

const (
	// DefaultMarginPercent is the target margin a new calculation starts with.
	DefaultMarginPercent = 30
	// MinMarginPercent and MaxMarginPercent bound the margin slider.
	MinMarginPercent = 10
	MaxMarginPercent = 80
)

// MaterialLine is one cost component of a production batch. Price is the
// total cost of the line for the whole batch, as typed by the user.
type MaterialLine struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Price string `json:"price"`
}

// CostInputs holds the raw calculator form for one batch.
type CostInputs struct {
	Materials           []MaterialLine `json:"materials"`
	LaborCost           string         `json:"labor_cost"`
	OverheadCost        string         `json:"overhead_cost"`
	Quantity            string         `json:"quantity"`
	TargetMarginPercent float64        `json:"target_margin_percent"`
}

// Result contains every value derived from CostInputs.
type Result struct {
	TotalMaterialsCost  float64 `json:"total_materials_cost"`
	TotalProductionCost float64 `json:"total_production_cost"`
	Quantity            float64 `json:"quantity"`
	HPPPerUnit          float64 `json:"hpp_per_unit"`
	SellingPrice        float64 `json:"selling_price"`
	ProfitPerUnit       float64 `json:"profit_per_unit"`
	MarkupPercent       float64 `json:"markup_percent"`
	MarginPercent       float64 `json:"margin_percent"`
}

// TotalMaterialsCost sums the sanitized price of every line. An empty list costs 0.
func TotalMaterialsCost(materials []MaterialLine) float64 {
	total := 0.0
	for _, m := range materials {
		total += SanitizeText(m.Price)
	}
	return total
}

// TotalProductionCost is materials plus labor plus overhead for the batch.
func TotalProductionCost(materials []MaterialLine, labor, overhead string) float64 {
	return TotalMaterialsCost(materials) + SanitizeText(labor) + SanitizeText(overhead)
}

// BatchQuantity sanitizes the unit count of a batch. Anything below 1,
// including unparseable text, counts as exactly 1 so it is always a safe divisor.
func BatchQuantity(quantity string) float64 {
	return SanitizeText(quantity, WithMin(1), Integer())
}

// HPPPerUnit is the cost of goods sold for a single unit.
func HPPPerUnit(materials []MaterialLine, labor, overhead, quantity string) float64 {
	return TotalProductionCost(materials, labor, overhead) / BatchQuantity(quantity)
}

// SellingPrice derives the price that yields marginPercent of gross margin on
// the selling price. The formula has no finite answer from 100% upward, so
// those margins (and NaN) price at 0. Negative margins price below cost.
func SellingPrice(hpp, marginPercent float64) float64 {
	if math.IsNaN(marginPercent) || marginPercent >= 100 {
		return 0
	}
	return hpp / (1 - marginPercent/100)
}

// MarkupPercent is profit as a percentage of cost. It is 0 when cost is 0.
func MarkupPercent(sellingPrice, hpp float64) float64 {
	if hpp == 0 {
		return 0
	}
	return (sellingPrice/hpp - 1) * 100
}

// ProfitPerUnit may be zero or negative for degenerate inputs.
func ProfitPerUnit(sellingPrice, hpp float64) float64 {
	return sellingPrice - hpp
}

// MarginPercent is the gross margin realised by an existing price. It is 0
// when the price is 0.
func MarginPercent(hpp, sellingPrice float64) float64 {
	if sellingPrice == 0 {
		return 0
	}
	return (sellingPrice - hpp) / sellingPrice * 100
}

// ClampMargin keeps a requested margin inside the slider range. Non-finite
// values fall back to DefaultMarginPercent.
func ClampMargin(marginPercent float64) float64 {
	if math.IsNaN(marginPercent) || math.IsInf(marginPercent, 0) {
		return DefaultMarginPercent
	}
	return math.Min(math.Max(marginPercent, MinMarginPercent), MaxMarginPercent)
}

// ProjectedProfit is the profit earned by selling units at the calculated price.
func (r Result) ProjectedProfit(units int) float64 {
	return r.ProfitPerUnit * float64(units)
}

// Calculate computes the full result for one batch. It is deterministic and
// never fails.
func Calculate(in CostInputs) Result {
	totalMaterials := TotalMaterialsCost(in.Materials)
	totalProduction := totalMaterials + SanitizeText(in.LaborCost) + SanitizeText(in.OverheadCost)
	quantity := BatchQuantity(in.Quantity)

	hpp := totalProduction / quantity
	price := SellingPrice(hpp, in.TargetMarginPercent)

	return Result{
		TotalMaterialsCost:  totalMaterials,
		TotalProductionCost: totalProduction,
		Quantity:            quantity,
		HPPPerUnit:          hpp,
		SellingPrice:        price,
		ProfitPerUnit:       ProfitPerUnit(price, hpp),
		MarkupPercent:       MarkupPercent(price, hpp),
		MarginPercent:       in.TargetMarginPercent,
	}
}
