package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Secret retrieval failures. Store implementations wrap one of these.
var (
	ErrSecretNotFound  = errors.New("secret not found")
	ErrSecretAccess    = errors.New("secret access denied")
	ErrSecretTransport = errors.New("secret transport failure")
	ErrSecretMalformed = errors.New("secret payload malformed")
)

// SecretStore fetches a key/value secret by id
type SecretStore interface {
	FetchSecret(ctx context.Context, secretID string) (map[string]string, error)
}

// SecretFetchError is returned by OverlaySecrets for any failure
type SecretFetchError struct {
	SecretID string
	Err      error
}

func (e *SecretFetchError) Error() string {
	return fmt.Sprintf("failed to load secret %s: %v", e.SecretID, e.Err)
}

func (e *SecretFetchError) Unwrap() error {
	return e.Err
}

// OverlaySecrets fetches secretID and applies every pair through setenv in
// key order. It returns the number of pairs applied. Pairs applied before a
// setenv failure stay applied.
func OverlaySecrets(ctx context.Context, store SecretStore, secretID string, setenv func(key, value string) error) (int, error) {
	values, err := store.FetchSecret(ctx, secretID)
	if err != nil {
		return 0, &SecretFetchError{SecretID: secretID, Err: err}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for i, k := range keys {
		if err := setenv(k, values[k]); err != nil {
			return i, &SecretFetchError{SecretID: secretID, Err: fmt.Errorf("set %s: %w", k, err)}
		}
	}

	return len(keys), nil
}
