// Package aiproxy exposes the pricing-advice and chat assistant endpoints.
// Both accept one free-text field, require a bearer credential and map
// every failure to a JSON error object.
package aiproxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Simplici0/bizness/internal/assistant"
	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/metrics"
)

// Input limits, in characters, applied after trimming.
const (
	MaxUserInputLength = 10000
	MaxMessageLength   = 5000
)

// maxBodyBytes bounds a request body; the largest input fits with room for
// JSON escaping.
const maxBodyBytes = 256 << 10

// Verifier checks a bearer token and returns the account it belongs to.
type Verifier interface {
	VerifyBearer(ctx context.Context, token string) (auth.User, error)
}

// Handler serves the proxy endpoints. A nil invoker means the assistant
// backend is not configured.
type Handler struct {
	invoker  assistant.Invoker
	verifier Verifier
}

// New returns a Handler.
func New(invoker assistant.Invoker, verifier Verifier) *Handler {
	return &Handler{invoker: invoker, verifier: verifier}
}

// Routes mounts POST /ai-calculator and POST /ai-chatbot behind a CORS
// layer that answers preflight requests for the given origins.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/ai-calculator", h.handlePricing)
	r.Post("/ai-chatbot", h.handleChat)
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// route describes one proxied assistant endpoint.
type route struct {
	endpoint      assistant.Endpoint
	field         string
	maxLength     int
	requiredMsg   string
	emptyMsg      string
	resultKey     string
	emptyFallback string
}

var (
	pricingRoute = route{
		endpoint:      assistant.EndpointPricing,
		field:         "user_input",
		maxLength:     MaxUserInputLength,
		requiredMsg:   "User input is required",
		emptyMsg:      "Input cannot be empty",
		resultKey:     "result",
		emptyFallback: "No analysis received",
	}
	chatRoute = route{
		endpoint:      assistant.EndpointChat,
		field:         "message",
		maxLength:     MaxMessageLength,
		requiredMsg:   "Message is required",
		emptyMsg:      "Message cannot be empty",
		resultKey:     "reply",
		emptyFallback: "No response received",
	}
)

func (h *Handler) handlePricing(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, pricingRoute)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chatRoute)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, rt route) {
	logger := zerolog.Ctx(r.Context())
	endpoint := string(rt.endpoint)
	record := func(outcome string) {
		metrics.AIProxyCalls.WithLabelValues(endpoint, outcome).Inc()
	}

	token, ok := auth.BearerToken(r)
	if !ok {
		record(metrics.OutcomeUnauthorized)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if _, err := h.verifier.VerifyBearer(r.Context(), token); err != nil {
		record(metrics.OutcomeUnauthorized)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body map[string]any
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		record(metrics.OutcomeBadRequest)
		writeError(w, http.StatusBadRequest, rt.requiredMsg)
		return
	}
	raw, ok := body[rt.field].(string)
	if !ok || raw == "" {
		record(metrics.OutcomeBadRequest)
		writeError(w, http.StatusBadRequest, rt.requiredMsg)
		return
	}

	input := truncate(strings.TrimSpace(raw), rt.maxLength)
	if input == "" {
		record(metrics.OutcomeBadRequest)
		writeError(w, http.StatusBadRequest, rt.emptyMsg)
		return
	}

	if h.invoker == nil {
		logger.Error().Str("endpoint", endpoint).Msg("AI backend not configured")
		record(metrics.OutcomeNotConfigured)
		writeError(w, http.StatusServiceUnavailable, "AI service not configured")
		return
	}

	resp, err := h.invoker.Invoke(r.Context(), assistant.Request{Endpoint: rt.endpoint, Input: input})
	if errors.Is(err, assistant.ErrUpstream) {
		logger.Error().Err(err).Str("endpoint", endpoint).Msg("AI backend failed")
		record(metrics.OutcomeUpstreamError)
		writeError(w, http.StatusBadGateway, "AI service temporarily unavailable")
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("endpoint", endpoint).Msg("AI proxy failed")
		record(metrics.OutcomeInternalError)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	text := resp.Text
	if text == "" {
		text = rt.emptyFallback
	}
	record(metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, map[string]string{rt.resultKey: text})
}

// truncate keeps at most n characters of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
