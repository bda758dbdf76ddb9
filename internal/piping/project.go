package piping

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
)

// validate is a singleton validator instance
var validate = validator.New()

// ErrEmptyProject is returned when a project has no pipes.
var ErrEmptyProject = errors.New("project has no pipes")

// ValidationError represents a project validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// LoadFromFile loads a project from a YAML or JSON file
func LoadFromFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := &Project{}
	if err := p.Parse(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse decodes YAML or JSON project data
func (p *Project) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// Print writes a short summary of the project
func (p *Project) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Name\n", p.Name)
	fmt.Fprintf(w, "%8.3f\t\t= Discretization limit (m)\n", p.DiscretizationLimit)
	fmt.Fprintf(w, "[%d]\t\t\t= Pipes\n", len(p.Pipes))
	fmt.Fprintf(w, "[%d/%d/%d]\t\t= Dead/Live/Wind loads\n", len(p.DeadLoads), len(p.LiveLoads), len(p.WindLoads))
	lines := make(map[string]int)
	for _, s := range p.Pipes {
		lines[s.Line]++
	}
	keys := make([]string, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "Line[%s] = %d segments\n", key, lines[key])
	}
}

// Validate checks the project definition
func (p *Project) Validate() error {
	if len(p.Pipes) == 0 {
		return ErrEmptyProject
	}
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}

	names := make(map[string]bool, len(p.Pipes))
	for _, s := range p.Pipes {
		if names[s.Name] {
			return &ValidationError{msg: fmt.Sprintf("duplicate pipe name %q", s.Name)}
		}
		names[s.Name] = true
		if s.Length() == 0 {
			return &ValidationError{msg: fmt.Sprintf("pipe %q has zero length", s.Name)}
		}
		if s.Preceding == s.Name {
			return &ValidationError{msg: fmt.Sprintf("pipe %q precedes itself", s.Name)}
		}
		if c := s.Params.EndConnector; c != nil && c.Kind == KindElbow && c.Elbow != nil {
			fs := c.Elbow.Fractions
			for i := 1; i < len(fs); i++ {
				if geom.Round(fs[i], geom.Precision) <= geom.Round(fs[i-1], geom.Precision) {
					return &ValidationError{msg: fmt.Sprintf("elbow on %q: fractions must be strictly increasing, got %v", s.Name, fs)}
				}
			}
		}
	}

	for _, table := range [][]LoadSpec{p.DeadLoads, p.LiveLoads, p.WindLoads} {
		for _, l := range table {
			if l.IsUDL() && l.EndDistance < l.Distance {
				return &ValidationError{msg: fmt.Sprintf("UDL on %q ends before it starts (%.3f < %.3f)", l.Pipe, l.EndDistance, l.Distance)}
			}
		}
	}
	return nil
}

// formatValidationError converts validator errors into a readable message
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := verrs[0]
	msg := fmt.Sprintf("%s: failed on '%s'", ve.Namespace(), ve.Tag())
	if ve.Param() != "" {
		msg += fmt.Sprintf(" (%s)", ve.Param())
	}
	if len(verrs) > 1 {
		msg += fmt.Sprintf(" and %d more", len(verrs)-1)
	}
	return &ValidationError{msg: msg}
}

// Prepare assigns identifiers that the rest of the pipeline relies on:
// supports without an id get a unique one (1-based, in pipe then support
// order, after the largest id already present) and loads without an id get
// "<table>-<n>".
func (p *Project) Prepare() {
	next := 0
	for _, s := range p.Pipes {
		for _, sp := range s.Params.Supports {
			if sp.ID > next {
				next = sp.ID
			}
		}
	}
	seen := make(map[int]bool)
	for _, s := range p.Pipes {
		for i := range s.Params.Supports {
			sp := &s.Params.Supports[i]
			if sp.ID == 0 || seen[sp.ID] {
				next++
				sp.ID = next
			}
			seen[sp.ID] = true
		}
	}

	nameLoads(p.DeadLoads, "dead")
	nameLoads(p.LiveLoads, "live")
	nameLoads(p.WindLoads, "wind")
}

func nameLoads(loads []LoadSpec, prefix string) {
	for i := range loads {
		if loads[i].ID == "" {
			loads[i].ID = prefix + "-" + strconv.Itoa(i+1)
		}
		if loads[i].Kind == "" {
			loads[i].Kind = LoadPoint
		}
	}
}
