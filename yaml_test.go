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

func TestYaml_Apply(t *testing.T) {
	t.Run("will apply flattened keys", func(t *testing.T) {
		t.Run("if the document holds nested mappings", func(t *testing.T) {
			src := FromYaml(strings.NewReader(`
io:
  serializations: X,Y
mapred:
  job:
    name: wordcount
`))

			store := make(Map)
			err := src.Apply(store)
			require.NoError(t, err)
			require.Equal(t, Map{
				"io.serializations": "X,Y",
				"mapred.job.name":   "wordcount",
			}, store)
		})
	})

	t.Run("will return an InvalidYamlError", func(t *testing.T) {
		t.Run("if the document is malformed", func(t *testing.T) {
			src := FromYaml(strings.NewReader("a: b\n  c"))

			err := src.Apply(make(Map))

			var yerr InvalidYamlError
			require.ErrorAs(t, err, &yerr)
		})
	})
}
