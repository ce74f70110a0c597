// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package jobconf

import (
	"testing"

	"github.com/z5labs/jobconf/codec"

	"github.com/stretchr/testify/require"
)

func TestMerger_Merge(t *testing.T) {
	testCases := []struct {
		name     string
		confs    []Map
		expected Map
	}{
		{
			name:     "no maps",
			confs:    nil,
			expected: Map{},
		},
		{
			name:     "a single map passes through unchanged",
			confs:    []Map{{"io.serializations": "X"}},
			expected: Map{"io.serializations": "X"},
		},
		{
			name: "later maps win for ordinary keys",
			confs: []Map{
				{"a": 1, "b": 2},
				{"a": 99},
			},
			expected: Map{"a": 99, "b": 2},
		},
		{
			name: "keys absent from later maps are preserved",
			confs: []Map{
				{"io.serializations": "X"},
				{"other": 1},
			},
			expected: Map{"io.serializations": "X", "other": 1},
		},
		{
			name: "serializations are unioned with incoming first",
			confs: []Map{
				{"io.serializations": "X"},
				{"io.serializations": "Y"},
			},
			expected: Map{"io.serializations": "WritableSerialization,BytesSerialization,TupleSerialization,Y,X"},
		},
		{
			name: "serializations set only by a later map are still normalized",
			confs: []Map{
				{"other": 1},
				{"io.serializations": "X"},
			},
			expected: Map{"other": 1, "io.serializations": "WritableSerialization,BytesSerialization,TupleSerialization,X"},
		},
		{
			name: "nil maps contribute nothing",
			confs: []Map{
				{"a": 1},
				nil,
				{"b": 2},
			},
			expected: Map{"a": 1, "b": 2},
		},
		{
			name: "unions accumulate across three maps",
			confs: []Map{
				{"io.serializations": "X"},
				{"io.serializations": "Y"},
				{"io.serializations": "Z"},
			},
			expected: Map{"io.serializations": "WritableSerialization,BytesSerialization,TupleSerialization,Z,Y,X"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMerger()

			merged, err := m.Merge(tc.confs...)
			require.NoError(t, err)
			require.Equal(t, tc.expected, merged)
		})
	}
}

func TestMerger_Merge_DoesNotModifyInputs(t *testing.T) {
	a := Map{"io.serializations": "X", "a": 1}
	b := Map{"io.serializations": "Y", "a": 2}

	m := NewMerger()
	_, err := m.Merge(a, b)
	require.NoError(t, err)

	require.Equal(t, Map{"io.serializations": "X", "a": 1}, a)
	require.Equal(t, Map{"io.serializations": "Y", "a": 2}, b)
}

func TestMerger_Merge_NormalizeSingle(t *testing.T) {
	t.Run("will normalize a lone map's serializations", func(t *testing.T) {
		t.Run("if the option is set", func(t *testing.T) {
			m := NewMerger(NormalizeSingle(true))

			merged, err := m.Merge(Map{"io.serializations": "X"})
			require.NoError(t, err)
			require.Equal(t, "WritableSerialization,BytesSerialization,TupleSerialization,X", merged["io.serializations"])
		})
	})

	t.Run("will leave a lone map without the key untouched", func(t *testing.T) {
		t.Run("even if the option is set", func(t *testing.T) {
			m := NewMerger(NormalizeSingle(true))

			merged, err := m.Merge(Map{"a": 1})
			require.NoError(t, err)
			require.Equal(t, Map{"a": 1}, merged)
		})
	})
}

func TestMerger_Merge_CustomKeyAndCodecs(t *testing.T) {
	m := NewMerger(
		SerializationsKey("job.codecs"),
		Codecs(codec.NewNormalizer(codec.Defaults("A"))),
	)

	merged, err := m.Merge(
		Map{"job.codecs": "X", "io.serializations": "untouched"},
		Map{"job.codecs": "Y"},
	)
	require.NoError(t, err)
	require.Equal(t, "A,Y,X", merged["job.codecs"])
	require.Equal(t, "untouched", merged["io.serializations"])
}

func TestMerger_Merge_Errors(t *testing.T) {
	t.Run("will return an UnexpectedKeyValueTypeError", func(t *testing.T) {
		t.Run("if an incoming serializations value is not a string", func(t *testing.T) {
			m := NewMerger()

			_, err := m.Merge(
				Map{"io.serializations": "X"},
				Map{"io.serializations": 42},
			)

			var kerr UnexpectedKeyValueTypeError
			require.ErrorAs(t, err, &kerr)
			require.Equal(t, "io.serializations", kerr.Key)
			require.Equal(t, "string", kerr.ExpectedType)
		})

		t.Run("if the accumulated serializations value is not a string", func(t *testing.T) {
			m := NewMerger()

			_, err := m.Merge(
				Map{"io.serializations": 42},
				Map{"io.serializations": "X"},
			)

			var kerr UnexpectedKeyValueTypeError
			require.ErrorAs(t, err, &kerr)
		})

		t.Run("if a lone map holds a non-string value while normalizing single maps", func(t *testing.T) {
			m := NewMerger(NormalizeSingle(true))

			_, err := m.Merge(Map{"io.serializations": 42})

			var kerr UnexpectedKeyValueTypeError
			require.ErrorAs(t, err, &kerr)
		})
	})
}
