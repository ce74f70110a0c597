// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package jobconf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJson_Apply(t *testing.T) {
	t.Run("will apply flattened keys", func(t *testing.T) {
		t.Run("if the document holds nested objects", func(t *testing.T) {
			src := FromJson(strings.NewReader(`{
				"io": {"serializations": "X,Y"},
				"mapred": {"job": {"name": "wordcount"}}
			}`))

			store := make(Map)
			err := src.Apply(store)
			require.NoError(t, err)
			require.Equal(t, Map{
				"io.serializations": "X,Y",
				"mapred.job.name":   "wordcount",
			}, store)
		})
	})

	t.Run("will return an InvalidJsonError", func(t *testing.T) {
		t.Run("if the document is malformed", func(t *testing.T) {
			src := FromJson(strings.NewReader(`{`))

			err := src.Apply(make(Map))

			var jerr InvalidJsonError
			require.ErrorAs(t, err, &jerr)
		})
	})
}
