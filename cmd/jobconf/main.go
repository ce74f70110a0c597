// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// jobconf composes partial job configuration files into the effective
// configuration submitted with a distributed computation job.
//
// Usage:
//
//	jobconf merge -f defaults.yaml -f job.json          # merge files in order
//	jobconf merge -f job.yaml --set io.serializations=X # apply overrides last
package main

import (
	"os"

	"github.com/z5labs/jobconf/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
