package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPInvoker_Pricing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hpp", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"user_input": "flour 10kg 120000"}, body)

		_, _ = w.Write([]byte(`{"result": "raise prices"}`))
	}))
	defer srv.Close()

	resp, err := NewHTTPInvoker(srv.URL, time.Second).Invoke(context.Background(), Request{Endpoint: EndpointPricing, Input: "flour 10kg 120000"})
	require.NoError(t, err)
	assert.Equal(t, "raise prices", resp.Text)
}

func TestHTTPInvoker_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chatbot", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["message"])

		_, _ = w.Write([]byte(`{"reply": "hi there"}`))
	}))
	defer srv.Close()

	resp, err := NewHTTPInvoker(srv.URL, time.Second).Invoke(context.Background(), Request{Endpoint: EndpointChat, Input: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Text)
}

func TestHTTPInvoker_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPInvoker(srv.URL, time.Second).Invoke(context.Background(), Request{Endpoint: EndpointChat, Input: "hello"})

	require.ErrorIs(t, err, ErrUpstream)
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
}

func TestHTTPInvoker_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPInvoker(url, time.Second).Invoke(context.Background(), Request{Endpoint: EndpointPricing, Input: "x"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestHTTPInvoker_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPInvoker(srv.URL, time.Second).Invoke(context.Background(), Request{Endpoint: EndpointPricing, Input: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestMockInvoker_ChatKeywords(t *testing.T) {
	m := MockInvoker{}
	tests := map[string]string{
		"How can I INCREASE revenue?": chatProfit,
		"what about profit":           chatProfit,
		"analyze my week":             chatSales,
		"Sales report please":         chatSales,
		"hello":                       chatDefault,
	}

	for input, want := range tests {
		resp, err := m.Invoke(context.Background(), Request{Endpoint: EndpointChat, Input: input})
		require.NoError(t, err)
		assert.Equal(t, want, resp.Text, input)
	}
}

func TestMockInvoker_Pricing(t *testing.T) {
	resp, err := MockInvoker{}.Invoke(context.Background(), Request{Endpoint: EndpointPricing, Input: "coffee beans 150000"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, `"coffee beans 150000"`)
	assert.Contains(t, resp.Text, "30% and 50%")
}

func TestMockInvoker_DelayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MockInvoker{Delay: time.Hour}.Invoke(ctx, Request{Endpoint: EndpointChat, Input: "hi"})
	assert.ErrorIs(t, err, context.Canceled)
}
