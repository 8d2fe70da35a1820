package pricing

import (
	"math"
	"math/rand/v2"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func lines(prices ...string) []MaterialLine {
	out := make([]MaterialLine, 0, len(prices))
	for i, p := range prices {
		out = append(out, MaterialLine{ID: i + 1, Price: p})
	}
	return out
}

func TestCalculate_BakeryBatch(t *testing.T) {
	result := Calculate(CostInputs{
		Materials:           lines("150000", "75000", "28000"),
		LaborCost:           "50000",
		OverheadCost:        "20000",
		Quantity:            "10",
		TargetMarginPercent: 30,
	})

	nearlyEqual(t, "totalMaterialsCost", result.TotalMaterialsCost, 253000)
	nearlyEqual(t, "totalProductionCost", result.TotalProductionCost, 323000)
	nearlyEqual(t, "hppPerUnit", result.HPPPerUnit, 32300)
	nearlyEqual(t, "sellingPrice", result.SellingPrice, 46142.857142857)
	nearlyEqual(t, "profitPerUnit", result.ProfitPerUnit, 13842.857142857)
	nearlyEqual(t, "markupPercent", result.MarkupPercent, 42.857142857)
	nearlyEqual(t, "projectedProfit", result.ProjectedProfit(100), 1384285.7142857)
}

func TestTotalMaterialsCost_EmptyListIsZero(t *testing.T) {
	nearlyEqual(t, "empty", TotalMaterialsCost(nil), 0)
}

func TestTotalMaterialsCost_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	prices := make([]string, 0, 50)
	sum := 0.0
	for i := 0; i < 50; i++ {
		v := float64(rng.IntN(1_000_000))
		sum += v
		prices = append(prices, formatFloat(v))
	}

	forward := TotalMaterialsCost(lines(prices...))
	rng.Shuffle(len(prices), func(i, j int) { prices[i], prices[j] = prices[j], prices[i] })
	shuffled := TotalMaterialsCost(lines(prices...))

	nearlyEqual(t, "forward", forward, sum)
	nearlyEqual(t, "shuffled", shuffled, sum)
}

func TestTotalMaterialsCost_IgnoresGarbageAndNegatives(t *testing.T) {
	nearlyEqual(t, "total", TotalMaterialsCost(lines("1000", "abc", "-500", "", "250.5")), 1250.5)
}

func TestHPPPerUnit_QuantityFloorsToOne(t *testing.T) {
	materials := lines("9000")
	want := HPPPerUnit(materials, "500", "500", "1")

	for _, qty := range []string{"0", "abc", "", "-3", "0.5"} {
		nearlyEqual(t, "hpp qty="+qty, HPPPerUnit(materials, "500", "500", qty), want)
	}
	nearlyEqual(t, "hpp qty=1", want, 10000)
}

func TestHPPPerUnit_IntegerQuantity(t *testing.T) {
	nearlyEqual(t, "hpp", HPPPerUnit(lines("1000"), "0", "0", "4.9"), 250)
}

func TestSellingPrice_MarginOnPrice(t *testing.T) {
	price := SellingPrice(100000, 50)
	nearlyEqual(t, "sellingPrice", price, 200000)
	nearlyEqual(t, "profitPerUnit", ProfitPerUnit(price, 100000), 100000)
	nearlyEqual(t, "markupPercent", MarkupPercent(price, 100000), 100)
}

func TestSellingPrice_MarginAtOrAboveHundredIsZero(t *testing.T) {
	for _, hpp := range []float64{0, 1, 32300, 1e12} {
		nearlyEqual(t, "margin=100", SellingPrice(hpp, 100), 0)
		nearlyEqual(t, "margin=150", SellingPrice(hpp, 150), 0)
	}
	nearlyEqual(t, "margin=NaN", SellingPrice(100, math.NaN()), 0)
}

func TestSellingPrice_NegativeMarginSellsBelowCost(t *testing.T) {
	price := SellingPrice(1000, -25)
	nearlyEqual(t, "sellingPrice", price, 800)
	if ProfitPerUnit(price, 1000) >= 0 {
		t.Fatalf("expected a loss for a negative margin, got %v", ProfitPerUnit(price, 1000))
	}
}

func TestMarkupPercent_ZeroCostIsGuarded(t *testing.T) {
	nearlyEqual(t, "markup", MarkupPercent(5000, 0), 0)
	nearlyEqual(t, "markup", MarkupPercent(0, 0), 0)
}

func TestCalculate_AllZeroInputs(t *testing.T) {
	result := Calculate(CostInputs{TargetMarginPercent: DefaultMarginPercent})

	nearlyEqual(t, "hpp", result.HPPPerUnit, 0)
	nearlyEqual(t, "sellingPrice", result.SellingPrice, 0)
	nearlyEqual(t, "profit", result.ProfitPerUnit, 0)
	nearlyEqual(t, "markup", result.MarkupPercent, 0)
	nearlyEqual(t, "quantity", result.Quantity, 1)
}

func TestMarginPercent(t *testing.T) {
	nearlyEqual(t, "espresso", MarginPercent(8000, 18000), 55.555555556)
	nearlyEqual(t, "free", MarginPercent(8000, 0), 0)
}

func TestClampMargin(t *testing.T) {
	nearlyEqual(t, "low", ClampMargin(2), MinMarginPercent)
	nearlyEqual(t, "high", ClampMargin(95), MaxMarginPercent)
	nearlyEqual(t, "inside", ClampMargin(45), 45)
	nearlyEqual(t, "nan", ClampMargin(math.NaN()), DefaultMarginPercent)
}

func TestFormatRupiah(t *testing.T) {
	if got := FormatRupiah(46142.857); got != "Rp 46.143" {
		t.Fatalf("FormatRupiah = %q, want %q", got, "Rp 46.143")
	}
	if got := FormatRupiah(math.Inf(1)); got != "Rp 0" {
		t.Fatalf("FormatRupiah(+Inf) = %q, want %q", got, "Rp 0")
	}
	if got := FormatPercent(42.857); got != "43%" {
		t.Fatalf("FormatPercent = %q, want %q", got, "43%")
	}
}
