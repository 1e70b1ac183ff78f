package fetch

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	NetworkFailure Kind = iota // no usable response
	ServerFailure              // non-2xx status
	ParseFailure               // body is not JSON
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network"
	case ServerFailure:
		return "server"
	case ParseFailure:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is returned by Client.Get for every failure.
// Consumers that only need a reason to show the user should use Error().
type FetchError struct {
	Kind     Kind
	Endpoint string
	Status   int // 0 when no response was received
	Message  string
	Err      error
}

func newFetchError(kind Kind, endpoint string, status int, err error) *FetchError {
	return &FetchError{
		Kind:     kind,
		Endpoint: endpoint,
		Status:   status,
		Message:  describe(kind, endpoint, status, err),
		Err:      err,
	}
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func describe(kind Kind, endpoint string, status int, err error) string {
	switch kind {
	case ServerFailure:
		return fmt.Sprintf("failed to load %s: server responded with status %d", endpoint, status)
	case ParseFailure:
		return fmt.Sprintf("failed to load %s: malformed response", endpoint)
	default:
		if errors.Is(err, context.Canceled) {
			return fmt.Sprintf("failed to load %s: request cancelled", endpoint)
		}
		return fmt.Sprintf("failed to load %s: %v", endpoint, err)
	}
}
