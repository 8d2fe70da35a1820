package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPInvoker forwards requests to BaseURL/hpp and BaseURL/chatbot.
type HTTPInvoker struct {
	baseURL string
	client  *http.Client
}

// NewHTTPInvoker returns an invoker for the backend at baseURL.
func NewHTTPInvoker(baseURL string, timeout time.Duration) *HTTPInvoker {
	return &HTTPInvoker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type pricingRequest struct {
	UserInput string `json:"user_input"`
}

type pricingResponse struct {
	Result string `json:"result"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Invoke posts the input as JSON and decodes the endpoint's answer field.
// Transport failures and non-2xx statuses wrap ErrUpstream.
func (h *HTTPInvoker) Invoke(ctx context.Context, req Request) (Response, error) {
	var payload any
	switch req.Endpoint {
	case EndpointPricing:
		payload = pricingRequest{UserInput: req.Input}
	case EndpointChat:
		payload = chatRequest{Message: req.Input}
	default:
		return Response{}, fmt.Errorf("assistant: unknown endpoint %q", req.Endpoint)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("encode assistant request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+string(req.Endpoint), bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build assistant request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("ngrok-skip-browser-warning", "true")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &UpstreamError{Status: resp.StatusCode}
	}

	switch req.Endpoint {
	case EndpointPricing:
		var out pricingResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return Response{}, fmt.Errorf("decode assistant response: %w", err)
		}
		return Response{Text: out.Result}, nil
	default:
		var out chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return Response{}, fmt.Errorf("decode assistant response: %w", err)
		}
		return Response{Text: out.Reply}, nil
	}
}
