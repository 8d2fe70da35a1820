// Package assistant is the capability behind the AI proxy endpoints. Invoker
// implementations either forward to a remote backend or answer locally.
package assistant

import (
	"context"
	"errors"
	"fmt"
)

// Endpoint selects which assistant answers a request.
type Endpoint string

const (
	// EndpointPricing gives pricing advice on a free-text cost description.
	EndpointPricing Endpoint = "hpp"
	// EndpointChat is the business chat assistant.
	EndpointChat Endpoint = "chatbot"
)

// Request is a single question to the assistant.
type Request struct {
	Endpoint Endpoint
	Input    string
}

// Response is the assistant's answer. Text may be empty when the backend
// returned nothing.
type Response struct {
	Text string
}

// Invoker answers one request. Each call is independent and attempted once.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// ErrUpstream marks failures of the remote backend.
var ErrUpstream = errors.New("assistant: upstream failure")

// UpstreamError is a non-success answer from the backend.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("assistant: upstream returned status %d", e.Status)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
