// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the jobconf command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "jobconf",
	Short: "Compose partial job configurations into one effective configuration",
	Long: `jobconf folds partial configuration files into the effective configuration
submitted with a distributed computation job. Ordinary keys follow last
writer wins; the io.serializations key is unioned so no codec is dropped.`,
	Version: version,
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(mergeCmd())

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
