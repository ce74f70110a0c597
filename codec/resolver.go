// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"fmt"
	"reflect"
)

// TypeResolver resolves a codec handle to the name of its Go type. It
// accepts either a [reflect.Type] directly or any value, in which case
// the value's type is used. Pointers are followed to their element type.
type TypeResolver struct{}

// ResolveName implements the [Resolver] interface.
func (TypeResolver) ResolveName(v any) (string, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return "", fmt.Errorf("can not resolve codec name of untyped nil")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "", fmt.Errorf("can not resolve codec name of unnamed type: %s", t)
	}
	return t.Name(), nil
}
