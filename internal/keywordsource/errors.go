package keywordsource

import (
	"errors"
	"fmt"

	"keywordlab/internal/models"
)

var (
	// ErrAdapterFailure matches every provider failure surfaced by a Source.
	ErrAdapterFailure = errors.New("keyword source failure")

	// ErrUnknownPolicy is returned by ParsePolicy for names other than google, naver and merged.
	ErrUnknownPolicy = errors.New("unknown source policy")
	// ErrUnknownProvider means a provider ID was not registered with the Source.
	ErrUnknownProvider = errors.New("unknown keyword provider")
)

// FailureKind classifies a provider failure.
type FailureKind string

// Failure kinds
const (
	FailureNetwork   FailureKind = "network"
	FailureTimeout   FailureKind = "timeout"
	FailureMalformed FailureKind = "malformed"
)

// ProviderError wraps a failed fetch from one provider.
type ProviderError struct {
	Provider models.ProviderID
	Kind     FailureKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderError match ErrAdapterFailure.
func (e *ProviderError) Is(target error) bool {
	return target == ErrAdapterFailure
}
