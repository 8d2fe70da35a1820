package main

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/bizness/internal/metrics"
	"github.com/Simplici0/bizness/internal/ocr"
	"github.com/Simplici0/bizness/internal/overview"
	"github.com/Simplici0/bizness/internal/pricing"
	"github.com/Simplici0/bizness/internal/validation"
)

// maxReceiptBytes bounds an uploaded receipt image.
const maxReceiptBytes = 10 << 20

func (s *server) handleProductList(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context(), businessFrom(r).ID, r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var in validation.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}

	p, err := s.store.CreateProduct(r.Context(), businessFrom(r).ID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProduct(r.Context(), businessFrom(r).ID, chi.URLParam(r, "productID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	var in validation.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}

	p, err := s.store.UpdateProduct(r.Context(), businessFrom(r).ID, chi.URLParam(r, "productID"), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(r.Context(), businessFrom(r).ID, chi.URLParam(r, "productID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleFileList(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.ListFiles(r.Context(), businessFrom(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, files)
}

func (s *server) handleFileCreate(w http.ResponseWriter, r *http.Request) {
	var in validation.FileInput
	if !decodeJSON(w, r, &in) {
		return
	}

	f, err := s.store.CreateFile(r.Context(), businessFrom(r).ID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, f)
}

func (s *server) handleFileDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFile(r.Context(), businessFrom(r).ID, chi.URLParam(r, "fileID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context(), businessFrom(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (s *server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	var in validation.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}

	t, err := s.store.CreateTransaction(r.Context(), businessFrom(r).ID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *server) handleOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := s.overview(r, businessFrom(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *server) overview(r *http.Request, businessID string) (overview.Stats, error) {
	products, err := s.store.ListProducts(r.Context(), businessID, "")
	if err != nil {
		return overview.Stats{}, err
	}
	transactions, err := s.store.ListTransactions(r.Context(), businessID)
	if err != nil {
		return overview.Stats{}, err
	}
	return overview.Compute(products, transactions), nil
}

// handleOCRScan accepts an optional multipart "receipt" file. The body is
// never required; extraction is mocked.
func (s *server) handleOCRScan(w http.ResponseWriter, r *http.Request) {
	upload, err := readReceipt(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid receipt upload")
		return
	}

	scan, err := s.ocr.Scan(r.Context(), businessFrom(r).ID, upload)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, scan)
}

func readReceipt(w http.ResponseWriter, r *http.Request) (ocr.Upload, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return ocr.Upload{}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptBytes)
	file, header, err := r.FormFile("receipt")
	if errors.Is(err, http.ErrMissingFile) {
		return ocr.Upload{}, nil
	}
	if err != nil {
		return ocr.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ocr.Upload{}, err
	}
	return ocr.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (s *server) handleOCRHistory(w http.ResponseWriter, r *http.Request) {
	scans, err := s.ocr.History(r.Context(), businessFrom(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, scans)
}

// calculatorRequest mirrors the calculator form. Numeric fields stay text so
// the engine can sanitize whatever was typed; JSON numbers are accepted too.
type calculatorRequest struct {
	Materials           []materialRequest   `json:"materials"`
	LaborCost           pricing.NumericText `json:"labor_cost"`
	OverheadCost        pricing.NumericText `json:"overhead_cost"`
	Quantity            pricing.NumericText `json:"quantity"`
	TargetMarginPercent *float64            `json:"target_margin_percent"`
}

type materialRequest struct {
	ID    int                 `json:"id"`
	Name  string              `json:"name"`
	Unit  string              `json:"unit"`
	Price pricing.NumericText `json:"price"`
}

func (c calculatorRequest) inputs() pricing.CostInputs {
	margin := float64(pricing.DefaultMarginPercent)
	if c.TargetMarginPercent != nil {
		margin = pricing.ClampMargin(*c.TargetMarginPercent)
	}
	materials := make([]pricing.MaterialLine, 0, len(c.Materials))
	for _, m := range c.Materials {
		materials = append(materials, pricing.MaterialLine{ID: m.ID, Name: m.Name, Unit: m.Unit, Price: string(m.Price)})
	}
	return pricing.CostInputs{
		Materials:           materials,
		LaborCost:           string(c.LaborCost),
		OverheadCost:        string(c.OverheadCost),
		Quantity:            string(c.Quantity),
		TargetMarginPercent: margin,
	}
}

type calculatorDisplay struct {
	TotalMaterialsCost  string `json:"total_materials_cost"`
	TotalProductionCost string `json:"total_production_cost"`
	HPPPerUnit          string `json:"hpp_per_unit"`
	SellingPrice        string `json:"selling_price"`
	ProfitPerUnit       string `json:"profit_per_unit"`
	MarkupPercent       string `json:"markup_percent"`
	MarginPercent       string `json:"margin_percent"`
}

type calculatorResponse struct {
	Inputs  pricing.CostInputs `json:"inputs"`
	Result  pricing.Result     `json:"result"`
	Display calculatorDisplay  `json:"display"`
}

func calculate(in pricing.CostInputs, source string) calculatorResponse {
	res := pricing.Calculate(in)
	metrics.CalculationsTotal.WithLabelValues(source).Inc()

	return calculatorResponse{
		Inputs: in,
		Result: res,
		Display: calculatorDisplay{
			TotalMaterialsCost:  pricing.FormatRupiah(res.TotalMaterialsCost),
			TotalProductionCost: pricing.FormatRupiah(res.TotalProductionCost),
			HPPPerUnit:          pricing.FormatRupiah(res.HPPPerUnit),
			SellingPrice:        pricing.FormatRupiah(res.SellingPrice),
			ProfitPerUnit:       pricing.FormatRupiah(res.ProfitPerUnit),
			MarkupPercent:       pricing.FormatPercent(res.MarkupPercent),
			MarginPercent:       pricing.FormatPercent(res.MarginPercent),
		},
	}
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculatorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, calculate(req.inputs(), metrics.SourceAPI))
}
