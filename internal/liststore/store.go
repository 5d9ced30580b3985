package liststore

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is matched by every ValidationError raised for a count below 1
var ErrInvalidCount = errors.New("count must be at least 1")

// ValidationError reports a rejected operation argument
type ValidationError struct {
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Store is an ordered, read-only sequence of strings
type Store struct {
	items []string
}

// SampleItems returns the fixed data the service boots with
func SampleItems() []string {
	return []string{"apple", "banana", "cherry", "date", "elderberry"}
}

// New creates a store holding a private copy of items
func New(items []string) *Store {
	return &Store{items: clone(items)}
}

// NewSample creates a store holding SampleItems
func NewSample() *Store {
	return New(SampleItems())
}

// Len returns the number of stored items
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the full list
func (s *Store) Items() []string {
	return clone(s.items)
}

// Head returns the first count items in their original order.
// A count larger than the list returns the whole list.
func (s *Store) Head(count int) ([]string, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	n := min(count, len(s.items))
	return clone(s.items[:n]), nil
}

// Tail returns the last count items in their original order.
// A count larger than the list returns the whole list.
func (s *Store) Tail(count int) ([]string, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	start := max(0, len(s.items)-count)
	return clone(s.items[start:]), nil
}

func validateCount(count int) error {
	if count < 1 {
		return &ValidationError{Field: "count", Value: count, Err: ErrInvalidCount}
	}
	return nil
}

// clone never returns nil so empty results encode as [] rather than null
func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
