// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/jobconf"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type mergeConfig struct {
	files     []string
	sets      []string
	envPrefix string
	output    string
	key       string
	verbose   bool
}

func mergeCmd() *cobra.Command {
	var cfg mergeConfig

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge configuration files and print the effective configuration",
		Example: `  jobconf merge -f defaults.yaml -f job.json
  jobconf merge -f job.yaml --set mapred.job.name=wordcount -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return merge(cmd, cfg)
		},
	}

	cmd.Flags().StringArrayVarP(&cfg.files, "file", "f", nil, "configuration file to merge, in order (yaml or json)")
	cmd.Flags().StringArrayVar(&cfg.sets, "set", nil, "key=value override applied after all files")
	cmd.Flags().StringVar(&cfg.envPrefix, "env-prefix", "", "apply environment variables with this prefix before overrides")
	cmd.Flags().StringVarP(&cfg.output, "output", "o", "yaml", "output format (yaml or json)")
	cmd.Flags().StringVar(&cfg.key, "serializations-key", jobconf.DefaultSerializationsKey, "reserved key receiving union semantics")
	cmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func merge(cmd *cobra.Command, cfg mergeConfig) error {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	srcs := make([]jobconf.Source, 0, len(cfg.files)+2)
	for _, path := range cfg.files {
		src, err := fileSource(path)
		if err != nil {
			return err
		}
		srcs = append(srcs, src)
		log.Debug("registered config file", slog.String("path", path))
	}
	if cfg.envPrefix != "" {
		srcs = append(srcs, jobconf.FromEnv(cfg.envPrefix))
	}
	if len(cfg.sets) > 0 {
		overrides, err := parseOverrides(cfg.sets)
		if err != nil {
			return err
		}
		srcs = append(srcs, overrides)
	}

	merger := jobconf.NewMerger(jobconf.SerializationsKey(cfg.key))
	m, err := jobconf.Read(merger, srcs...)
	if err != nil {
		log.Error("failed to compose configuration", slog.String("error", err.Error()))
		return err
	}

	conf := m.Map()
	log.Debug("composed configuration", slog.Int("sources", len(srcs)), slog.Int("keys", len(conf)))
	return printConf(cmd, cfg.output, conf)
}

func fileSource(path string) (jobconf.Source, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	r := jobconf.NewFileReader(os.DirFS(dir), name)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jobconf.FromJson(r), nil
	case ".yaml", ".yml":
		return jobconf.FromYaml(r), nil
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s", path)
	}
}

func parseOverrides(pairs []string) (jobconf.Map, error) {
	m := make(jobconf.Map, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("override must be key=value: %s", pair)
		}
		m[k] = v
	}
	return m, nil
}

func printConf(cmd *cobra.Command, format string, conf jobconf.Map) error {
	switch format {
	case "yaml":
		return yaml.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any(conf))
	case "json":
		b, err := json.MarshalIndent(conf, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
