// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package jobconf

import (
	"github.com/z5labs/jobconf/codec"
)

// DefaultSerializationsKey is the reserved configuration key holding the
// comma delimited list of serialization codecs.
const DefaultSerializationsKey = "io.serializations"

// MergerOption represents options for configuring a Merger.
type MergerOption func(*Merger)

// SerializationsKey overrides the reserved key which receives union
// instead of override semantics.
func SerializationsKey(key string) MergerOption {
	return func(m *Merger) {
		m.key = key
	}
}

// Codecs sets the codec.Normalizer used to union serialization lists.
func Codecs(n *codec.Normalizer) MergerOption {
	return func(m *Merger) {
		m.codecs = n
	}
}

// NormalizeSingle forces normalization of the serializations key even
// when zero or one map is merged. Without it no fold step runs for such
// inputs, so the default codecs are never injected and a lone map passes
// through unchanged.
func NormalizeSingle(enabled bool) MergerOption {
	return func(m *Merger) {
		m.normalizeSingle = enabled
	}
}

// Merger folds an ordered sequence of configuration maps into one
// effective map. For every key other than the serializations key the
// later map's value wins. The serializations key is recomputed on each
// fold step as the union of the incoming list, the accumulated list and
// the default codecs, with the incoming list taking first seen priority.
type Merger struct {
	key             string
	codecs          *codec.Normalizer
	normalizeSingle bool
}

// NewMerger configures a Merger.
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{
		key:    DefaultSerializationsKey,
		codecs: codec.NewNormalizer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge folds the given maps, in order, into a fresh map. The inputs are
// never modified. A nil map contributes nothing. With zero or one map no
// fold step runs, so the lone map is returned as a copy without any
// codec normalization, unless [NormalizeSingle] was set.
func (m *Merger) Merge(confs ...Map) (Map, error) {
	merged := make(Map)
	rest := confs
	if len(confs) > 0 {
		for k, v := range confs[0] {
			merged[k] = v
		}
		rest = confs[1:]
	}

	for _, conf := range rest {
		if conf == nil {
			continue
		}
		next, err := m.fold(merged, conf)
		if err != nil {
			return nil, err
		}
		merged = next
	}

	if m.normalizeSingle && len(confs) < 2 {
		err := m.normalizeKey(merged)
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// fold overlays incoming onto acc right-biased, except for the
// serializations key which, when present in incoming, is replaced by the
// union of incoming's and acc's lists.
func (m *Merger) fold(acc, incoming Map) (Map, error) {
	out := make(Map, len(acc)+len(incoming))
	for k, v := range acc {
		out[k] = v
	}
	for k, v := range incoming {
		out[k] = v
	}

	v, ok := incoming[m.key]
	if !ok {
		return out, nil
	}

	in, err := m.stringValue(v)
	if err != nil {
		return nil, err
	}
	prior, err := m.stringValue(acc[m.key])
	if err != nil {
		return nil, err
	}

	unioned, err := m.codecs.MergeStrings(in, prior)
	if err != nil {
		return nil, err
	}
	out[m.key] = unioned
	return out, nil
}

func (m *Merger) normalizeKey(conf Map) error {
	v, ok := conf[m.key]
	if !ok {
		return nil
	}

	s, err := m.stringValue(v)
	if err != nil {
		return err
	}
	normalized, err := m.codecs.MergeStrings(s)
	if err != nil {
		return err
	}
	conf[m.key] = normalized
	return nil
}

func (m *Merger) stringValue(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", UnexpectedKeyValueTypeError{
			Key:          m.key,
			ExpectedType: "string",
		}
	}
	return s, nil
}
