// SPDX-License-Identifier: MIT

// Package problems ships small ground planning problems used by tests,
// benchmarks, examples and the lvplan CLI.
//
// Problems are embedded YAML documents in the strips format:
//
//   - have-cake:    2 fluents, 2 actions (the textbook cake dilemma).
//   - air-cargo-p1: 12 fluents, 20 actions (2 cargo, 2 planes, 2 airports).
package problems

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvplan/strips"
)

// ErrUnknownProblem is returned by Load for a name that is not registered.
var ErrUnknownProblem = errors.New("problems: unknown problem")

// Problem names.
const (
	HaveCakeName   = "have-cake"
	AirCargoP1Name = "air-cargo-p1"
)

//go:embed data/*.yaml
var data embed.FS

// files maps problem names to embedded documents.
var files = map[string]string{
	HaveCakeName:   "data/have_cake.yaml",
	AirCargoP1Name: "data/air_cargo_p1.yaml",
}

// Names returns the registered problem names, sorted.
func Names() []string {
	out := make([]string, 0, len(files))
	for name := range files {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Load decodes the named problem. Each call returns a fresh copy.
func Load(name string) (*strips.Problem, error) {
	path, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProblem, name)
	}
	raw, err := data.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problems: read %s: %w", path, err)
	}
	p, err := strips.LoadProblem(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("problems: %s: %w", name, err)
	}

	return p, nil
}

// MustLoad is like Load but panics on error. Intended for tests and examples.
func MustLoad(name string) *strips.Problem {
	p, err := Load(name)
	if err != nil {
		panic(err)
	}

	return p
}

// HaveCake returns the have-cake problem.
func HaveCake() *strips.Problem { return MustLoad(HaveCakeName) }

// AirCargoP1 returns the first air-cargo problem.
func AirCargoP1() *strips.Problem { return MustLoad(AirCargoP1Name) }
