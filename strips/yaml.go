// SPDX-License-Identifier: MIT

package strips

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// problemFile is the on-disk YAML layout of a Problem.
type problemFile struct {
	Name    string   `yaml:"name"`
	Fluents []string `yaml:"fluents"`
	Initial string   `yaml:"initial"`
	Goal    []string `yaml:"goal"`
	Actions []Action `yaml:"actions"`
}

// LoadProblem decodes a YAML problem definition from r and validates it.
// Goal entries use the Literal string form ("Sym" or "~Sym").
// Unknown keys are rejected so that typos surface early.
func LoadProblem(r io.Reader) (*Problem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var pf problemFile
	if err := dec.Decode(&pf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidProblem)
		}

		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidProblem, err)
	}

	p := &Problem{
		Name:     pf.Name,
		StateMap: pf.Fluents,
		Initial:  pf.Initial,
		Actions:  pf.Actions,
		Goal:     make([]Literal, 0, len(pf.Goal)),
	}
	for _, g := range pf.Goal {
		p.Goal = append(p.Goal, ParseLiteral(g))
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// LoadProblemFile opens path and delegates to LoadProblem.
func LoadProblemFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("strips: open problem %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadProblem(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// MarshalYAML renders p in the layout accepted by LoadProblem.
func MarshalYAML(p *Problem) ([]byte, error) {
	pf := problemFile{
		Name:    p.Name,
		Fluents: p.StateMap,
		Initial: p.Initial,
		Actions: p.Actions,
		Goal:    make([]string, 0, len(p.Goal)),
	}
	for _, g := range p.Goal {
		pf.Goal = append(pf.Goal, g.String())
	}

	return yaml.Marshal(&pf)
}
