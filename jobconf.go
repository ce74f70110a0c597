// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package jobconf composes partial job configurations into one effective
// configuration.
//
// Configurations are flat string keyed maps as used when submitting a job
// to a distributed computation framework. Later sources override earlier
// sources for ordinary keys, while the reserved serializations key is
// unioned so that no codec a downstream component depends on is silently
// dropped. See [Merger] for the merge semantics and the codec package for
// codec list normalization.
package jobconf

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Store represents a general key value structure. Keys are flat, dotted
// names such as "mapred.job.name".
type Store interface {
	Set(key string, v any) error
}

// Source defines valid config sources as those who can serialize
// themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Map is an ordinary map[string]any but implements both the Source and
// Store interfaces.
type Map map[string]any

// Apply implements the Source interface. It recursively walks the
// underlying map and sets each leaf value on the given store under its
// dotted key path.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, "")
}

func walkMap(m map[string]any, store Store, prefix string) error {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch x := v.(type) {
		case map[string]any:
			err := walkMap(x, store, key)
			if err != nil {
				return err
			}
		default:
			err := store.Set(key, x)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Set implements the Store interface.
func (m Map) Set(key string, v any) error {
	m[key] = v
	return nil
}

// Manager holds an effective configuration produced by [Read].
type Manager struct {
	store Map
}

// Read materializes each source into its own configuration map and then
// folds the maps, in order, with the given Merger. A nil Merger reads
// with [NewMerger]'s defaults.
func Read(m *Merger, srcs ...Source) (*Manager, error) {
	if m == nil {
		m = NewMerger()
	}

	confs := make([]Map, 0, len(srcs))
	for _, src := range srcs {
		conf := make(Map)
		err := src.Apply(conf)
		if err != nil {
			return nil, err
		}
		confs = append(confs, conf)
	}

	merged, err := m.Merge(confs...)
	if err != nil {
		return nil, err
	}
	return &Manager{store: merged}, nil
}

// Map returns a copy of the effective configuration.
func (m *Manager) Map() Map {
	out := make(Map, len(m.store))
	for k, v := range m.store {
		out[k] = v
	}
	return out
}

// Unmarshal decodes the effective configuration into v. Dotted keys are
// expanded into nested values before decoding, so "mapred.job.name"
// decodes into a field tagged `config:"mapred"` containing a field
// tagged `config:"job"` and so on. A comma delimited string value
// decodes directly into a []string field.
func (m *Manager) Unmarshal(v any) error {
	expanded, err := m.store.expand()
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: composeDecodeHooks(
			delimitedListHookFunc(),
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(expanded)
}

// UnexpectedKeyValueTypeError represents the situation when a key holds
// a different type of value than the one required of it.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the error interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a %s: %s", e.ExpectedType, e.Key)
}

// expand splits each dotted key into a chain of nested maps. A key whose
// prefix collides with an already set leaf value fails with an
// UnexpectedKeyValueTypeError.
func (m Map) expand() (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		err := setKeyPath(out, k, strings.Split(k, "."), v)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setKeyPath(m map[string]any, key string, path []string, v any) error {
	if len(path) == 1 {
		if _, ok := m[path[0]].(map[string]any); ok {
			// a longer dotted key already claimed this path
			return UnexpectedKeyValueTypeError{
				Key:          key,
				ExpectedType: "leaf value",
			}
		}
		m[path[0]] = v
		return nil
	}

	old, ok := m[path[0]]
	if !ok {
		old = make(map[string]any)
		m[path[0]] = old
	}

	subM, ok := old.(map[string]any)
	if !ok {
		return UnexpectedKeyValueTypeError{
			Key:          key,
			ExpectedType: "map[string]any",
		}
	}
	return setKeyPath(subM, key, path[1:], v)
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when attempting to unmarshal a config value
// to a struct field whose type does not match the config value type, up
// to, coercion.
type TypeCoercionError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.from.Type().Name(), e.to.Type().Name(), e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

// delimitedListHookFunc decodes a comma delimited string, such as the
// serializations value, into a []string field.
func delimitedListHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}

		s := data.(string)
		if s == "" {
			return []string{}, nil
		}
		return strings.Split(s, ","), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		case reflect.Int:
			return time.Duration(int64(data.(int))), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
