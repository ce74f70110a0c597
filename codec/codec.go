// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package codec provides canonicalization and merging of serialization
// codec lists.
//
// A job configuration carries the codecs its execution framework may use
// to (de)serialize values as a single comma delimited string. Composing
// partial configurations must union these lists instead of overwriting
// them, since dropping a codec a downstream component depends on causes
// runtime failures that are hard to diagnose. A configurable set of
// default codecs is re-asserted, in declared order, ahead of all caller
// supplied codecs on every normalization.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/z5labs/jobconf/pkg/sets"
)

// Identifier names a serialization codec. It is either the canonical
// string name itself or an opaque handle which a [Resolver] can turn
// into one.
type Identifier any

// Resolver turns an opaque codec handle into its canonical string name.
type Resolver interface {
	ResolveName(v any) (string, error)
}

// ResolverFunc is a func type which implements the [Resolver] interface.
type ResolverFunc func(any) (string, error)

// ResolveName implements the [Resolver] interface.
func (f ResolverFunc) ResolveName(v any) (string, error) {
	return f(v)
}

// DefaultSerializations are the codecs which must be present in every
// normalized codec list, in this order, before any caller supplied codec.
var DefaultSerializations = []string{
	"WritableSerialization",
	"BytesSerialization",
	"TupleSerialization",
}

// ErrNoResolver occurs when a non-string [Identifier] is normalized
// by a [Normalizer] which has no [Resolver] configured.
var ErrNoResolver = errors.New("no codec resolver configured")

// ResolveError occurs when an [Identifier] can not be resolved to a
// canonical codec name. It indicates a caller bug, such as referencing
// an unknown codec, and is never retried or swallowed.
type ResolveError struct {
	Value any
	Cause error
}

// Error implements the error interface.
func (e ResolveError) Error() string {
	return fmt.Sprintf("failed to resolve codec name for %T: %s", e.Value, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ResolveError) Unwrap() error {
	return e.Cause
}

// NormalizerOption represents options for configuring a Normalizer.
type NormalizerOption func(*Normalizer)

// Defaults overrides the default codec set asserted by the Normalizer.
// The caller owns the slice contents; order is preserved in every
// normalized output.
func Defaults(names ...string) NormalizerOption {
	return func(n *Normalizer) {
		n.defaults = names
	}
}

// ResolveWith sets the [Resolver] used for non-string identifiers.
func ResolveWith(r Resolver) NormalizerOption {
	return func(n *Normalizer) {
		n.resolver = r
	}
}

// Normalizer canonicalizes codec lists. The zero configuration asserts
// [DefaultSerializations] and resolves only plain string identifiers.
type Normalizer struct {
	defaults []string
	resolver Resolver
}

// NewNormalizer configures a Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		defaults: DefaultSerializations,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize resolves each identifier to its canonical name and returns
// the ordered union of the default codec set and the resolved names,
// joined with commas. The defaults always contribute first so the result
// is never empty and always contains every default.
func (n *Normalizer) Normalize(ids ...Identifier) (string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		switch x := id.(type) {
		case string:
			names = append(names, x)
		default:
			if n.resolver == nil {
				return "", ResolveError{Value: id, Cause: ErrNoResolver}
			}
			name, err := n.resolver.ResolveName(id)
			if err != nil {
				return "", ResolveError{Value: id, Cause: err}
			}
			names = append(names, name)
		}
	}
	return strings.Join(sets.Union(n.defaults, names), ","), nil
}

// MergeStrings flattens several comma delimited codec lists into one
// normalized list. An empty string means the value was never set and
// contributes nothing. Empty tokens produced by doubled delimiters,
// e.g. "a,,b", are dropped rather than kept as literal empty codec
// names. Merging no values at all still yields the normalized default
// list.
func (n *Normalizer) MergeStrings(lists ...string) (string, error) {
	var ids []Identifier
	for _, list := range lists {
		if list == "" {
			continue
		}
		for _, tok := range strings.Split(list, ",") {
			if tok == "" {
				continue
			}
			ids = append(ids, tok)
		}
	}
	return n.Normalize(ids...)
}
