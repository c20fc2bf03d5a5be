// Package normalization maps loosely written configuration strings onto typed enums.
package normalization

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Normalizer accepts case-insensitive, whitespace-padded spellings of a fixed
// set of values.
type Normalizer[T comparable] struct {
	values   map[string]T
	fallback T
}

func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{values: make(map[string]T, len(values)), fallback: fallback}
	for k, v := range values {
		n.values[clean(k)] = v
	}
	return n
}

// Normalize returns the value for raw, or the fallback when unrecognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	v, err := n.Parse(raw)
	if err != nil {
		return n.fallback
	}
	return v
}

// Parse is Normalize that rejects unrecognized input. Blank input yields the fallback.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.fallback, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown value %q (want one of %s)", raw,
		strings.Join(slices.Sorted(maps.Keys(n.values)), ", "))
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
