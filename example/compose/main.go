// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/z5labs/jobconf"
	"github.com/z5labs/jobconf/codec"
)

const clusterDefaults = `
mapred:
  job:
    timeout: 30s
io:
  serializations: JavaSerialization
`

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	merger := jobconf.NewMerger(jobconf.Codecs(codec.NewNormalizer(
		codec.ResolveWith(codec.TypeResolver{}),
	)))

	m, err := jobconf.Read(merger,
		jobconf.FromYaml(strings.NewReader(clusterDefaults)),
		jobconf.Map{
			"mapred.job.name":   "wordcount",
			"io.serializations": "AvroSerialization",
		},
	)
	if err != nil {
		log.Error("failed to compose configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	conf := m.Map()
	fmt.Println(conf["mapred.job.name"])
	fmt.Println(conf["io.serializations"])
}
