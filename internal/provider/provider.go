// Package provider adapts the supported AI chat backends behind a
// single Client interface with a typed error taxonomy.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartcat-ai/kicat/internal/config"
)

// Client is one chat backend. Implementations are stateless between
// calls; conversation context travels in the prompt.
type Client interface {
	// Name returns the provider identifier ("anthropic", "openai", "gemini").
	Name() string

	// Send submits one system+user prompt pair and returns the text reply.
	Send(ctx context.Context, system, user string) (string, error)

	// Ping verifies reachability and credentials with a minimal request.
	Ping(ctx context.Context) error
}

// ErrorKind classifies provider failures for the session's error policy.
type ErrorKind int

const (
	ErrAuth ErrorKind = iota
	ErrNetwork
	ErrMalformedResponse
	ErrUnsupportedProvider
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAuth:
		return "auth"
	case ErrNetwork:
		return "network"
	case ErrMalformedResponse:
		return "malformed response"
	case ErrUnsupportedProvider:
		return "unsupported provider"
	default:
		return "unknown"
	}
}

// Error is a classified provider failure. The wrapped error keeps the
// transport detail; Message carries the provider's own text when the
// API returned one.
type Error struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s error", e.Provider, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a provider Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// New creates a client for the configured provider name.
func New(cfg config.ProviderConfig) (Client, error) {
	factory, ok := lookup(cfg.Name)
	if !ok {
		return nil, &Error{
			Kind:     ErrUnsupportedProvider,
			Provider: cfg.Name,
			Message:  fmt.Sprintf("no such provider %q (available: %v)", cfg.Name, List()),
		}
	}
	return factory(cfg)
}
