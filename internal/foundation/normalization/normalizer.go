// Package normalization maps loosely written configuration strings onto
// closed enumerations.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps raw strings to values of an enumeration. Lookups ignore
// case and surrounding whitespace.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer for the enumeration called name. values
// may contain several spellings (aliases) of the same value.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Name returns the enumeration name used in messages.
func (n *Normalizer[T]) Name() string { return n.name }

// Default returns the value used for empty or unknown input.
func (n *Normalizer[T]) Default() T { return n.defaultValue }

// Normalize returns the value for raw, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.validValues[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithError is Normalize that reports unknown input. Empty input
// yields the default without error.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.validValues[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.validKeys)
}

// IsValid reports whether raw names a value.
func (n *Normalizer[T]) IsValid(raw string) bool {
	_, ok := n.validValues[clean(raw)]
	return ok
}

// ValidKeys returns every accepted spelling, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
