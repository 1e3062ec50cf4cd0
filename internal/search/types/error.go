package types

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload reports a provider response that decoded but did not
// carry the fields the adapter needs.
var ErrMalformedPayload = errors.New("malformed provider payload")

// ProviderError wraps a failure from one external search source. Adapters
// return it instead of a degraded page so the dispatcher can distinguish
// "provider failed" from "provider had nothing" before applying the
// fail-soft-to-empty policy at the response boundary.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
