// Package secrets abstracts how the gateway obtains its secret material.
// Handlers never read the environment directly; everything flows through a
// Provider so deployments can swap the backing mechanism without touching
// call sites, and tests can inject fixed values.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound reports a secret that the provider cannot resolve. Callers
// must not leak this distinction to external clients.
var ErrNotFound = errors.New("secrets: not found")

// Provider resolves a named secret, returning its value or failing.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// Env resolves secrets from environment variables, optionally under a
// prefix. An unset or empty variable is a retrieval failure, not an empty
// secret.
type Env struct {
	Prefix string
}

func (e Env) Get(_ context.Context, name string) (string, error) {
	value := os.Getenv(e.Prefix + name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}

// Static serves secrets from a fixed map. Intended for tests.
type Static map[string]string

func (s Static) Get(_ context.Context, name string) (string, error) {
	value, ok := s[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}
