// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package jobconf

import (
	"os"
	"strings"
)

// Env represents a Source where its underlying values are extracted
// from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which will apply its config from the
// environment variables available to the current process. Only
// variables starting with prefix apply; the prefix is stripped and the
// remaining name is lowercased with underscores replaced by dots, so
// with prefix "JOBCONF_" the variable JOBCONF_MAPRED_JOB_NAME sets the
// key "mapred.job.name".
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	m := make(Map)
	env := src.environ()
	for _, pair := range env {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if !strings.HasPrefix(k, src.prefix) {
			continue
		}

		k = strings.TrimPrefix(k, src.prefix)
		k = strings.ReplaceAll(strings.ToLower(k), "_", ".")
		if k == "" {
			continue
		}
		m[k] = v
	}
	return m.Apply(store)
}
