// Package translation defines the gateway contract to a translation provider
// and the structured error taxonomy its failure path reports.
package translation

import (
	"errors"
	"fmt"
)

// Kind classifies provider failures. Classification happens inside provider
// clients, where the vendor response is still structured; callers only ever
// branch on Kind.
type Kind string

const (
	// KindUnavailable means the provider could not serve the request.
	KindUnavailable Kind = "unavailable"
	// KindQuota means the provider rejected the request over a rate or usage limit.
	KindQuota Kind = "quota"
	// KindInvalidCredential means the provider rejected authentication.
	KindInvalidCredential Kind = "invalid_credential"
	// KindNetwork means the transport to the provider failed.
	KindNetwork Kind = "network"
	// KindGeneric covers any other provider failure.
	KindGeneric Kind = "generic"
)

// ProviderError is the structured failure returned by translation clients.
type ProviderError struct {
	ErrKind Kind
	Cause   error
}

func NewProviderError(kind Kind, cause error) *ProviderError {
	return &ProviderError{ErrKind: kind, Cause: cause}
}

func (e *ProviderError) Kind() Kind {
	if e == nil {
		return KindGeneric
	}
	return e.ErrKind
}

func (e *ProviderError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("translation provider error: %s", e.ErrKind)
	}
	return fmt.Sprintf("translation provider error (%s): %v", e.ErrKind, e.Cause)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// KindOf extracts the provider error kind from an error chain, defaulting to
// KindGeneric for errors that did not originate in a provider client.
func KindOf(err error) Kind {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Kind()
	}
	return KindGeneric
}
