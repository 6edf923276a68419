// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfig wraps config file failures.
var ErrConfig = errors.New("cli: invalid config")

// fileConfig is the --config document. Every key is optional; explicit
// command-line flags take precedence.
//
//	problem: problems/logistics.yaml   # relative to the config file
//	state: TFFT
//	parallel: true
//	links: preconditions
//	support: all-pairs
//	max_levels: 64
//	workers: 4
//	log_level: info
type fileConfig struct {
	Problem   string `yaml:"problem"`
	Builtin   string `yaml:"builtin"`
	State     string `yaml:"state"`
	Parallel  *bool  `yaml:"parallel"`
	Links     string `yaml:"links"`
	Support   string `yaml:"support"`
	MaxLevels *int   `yaml:"max_levels"`
	Workers   *int   `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
}

func loadConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer f.Close()

	var cfg fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if cfg.Problem != "" && !filepath.IsAbs(cfg.Problem) {
		cfg.Problem = filepath.Join(filepath.Dir(path), cfg.Problem)
	}

	return &cfg, nil
}

// apply copies config values into a for every flag the user did not set.
func (c *fileConfig) apply(a *app, changed func(name string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setString("problem", &a.problemFile, c.Problem)
	setString("builtin", &a.builtin, c.Builtin)
	setString("state", &a.state, c.State)
	setString("links", &a.links, c.Links)
	setString("support", &a.support, c.Support)
	setString("log-level", &a.logLevel, c.LogLevel)

	if c.Parallel != nil && !changed("parallel") {
		a.parallel = *c.Parallel
	}
	if c.MaxLevels != nil && !changed("max-levels") {
		a.maxLevels = *c.MaxLevels
	}
	if c.Workers != nil && !changed("workers") {
		a.workers = *c.Workers
	}
}
