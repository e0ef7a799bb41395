package endpoints

import (
	"fmt"
	"strings"

	"github.com/arbaizam/fredclient/pkg/errors"
)

// Registry is a read-only table of endpoint specs keyed by operation name.
// It preserves insertion order for listing.
type Registry struct {
	specs []EndpointSpec
	index map[string]int
}

// New builds a Registry from specs, enforcing that names are unique, paths are
// set, parameter names do not repeat and every parameter has a known type.
func New(specs ...EndpointSpec) (*Registry, error) {
	r := &Registry{
		specs: make([]EndpointSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
		if _, dup := r.index[spec.Name]; dup {
			return nil, errors.NewValidationError("name", spec.Name, fmt.Sprintf("duplicate operation %q", spec.Name))
		}
		r.index[spec.Name] = len(r.specs)
		r.specs = append(r.specs, spec.clone())
	}
	return r, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(specs ...EndpointSpec) *Registry {
	r, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (EndpointSpec, error) {
	i, ok := r.index[name]
	if !ok {
		return EndpointSpec{}, errors.NewUnknownOperationError(name)
	}
	return r.specs[i].clone(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Operations returns all operation names in insertion order.
func (r *Registry) Operations() []string {
	names := make([]string, len(r.specs))
	for i, spec := range r.specs {
		names[i] = spec.Name
	}
	return names
}

// Specs returns copies of all specs in insertion order.
func (r *Registry) Specs() []EndpointSpec {
	out := make([]EndpointSpec, len(r.specs))
	for i, spec := range r.specs {
		out[i] = spec.clone()
	}
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.specs)
}

// Describe renders the description of name followed by its parameter listings.
func (r *Registry) Describe(name string) (string, error) {
	spec, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return Describe(spec), nil
}

// Describe renders a spec as human-readable text:
//
//	series: Get an economic data series.
//
//	Required parameters:
//	  - series_id: string
//	Optional parameters:
//	  - realtime_start: string
func Describe(spec EndpointSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", spec.Name, spec.Description)
	b.WriteString("Required parameters:\n")
	if len(spec.Required) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, p := range spec.Required {
		fmt.Fprintf(&b, "  - %s: %s\n", p.Name, p.Type)
	}
	if len(spec.Optional) > 0 {
		b.WriteString("Optional parameters:\n")
		for _, p := range spec.Optional {
			fmt.Fprintf(&b, "  - %s: %s\n", p.Name, p.Type)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func validateSpec(spec EndpointSpec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return errors.NewValidationError("name", spec.Name, "operation name is empty")
	}
	if strings.Trim(spec.Path, "/ ") == "" {
		return errors.NewValidationError("path", spec.Path, fmt.Sprintf("operation %q has no path", spec.Name))
	}

	seen := make(map[string]string, len(spec.Required)+len(spec.Optional))
	check := func(kind string, params []Param) error {
		for _, p := range params {
			if p.Name == "" {
				return errors.NewValidationError(kind, p, fmt.Sprintf("operation %q has an unnamed %s parameter", spec.Name, kind))
			}
			if !p.Type.Valid() {
				return errors.NewValidationError(p.Name, p.Type, fmt.Sprintf("operation %q declares unknown type %s", spec.Name, p.Type))
			}
			if prev, dup := seen[p.Name]; dup && prev == kind {
				return errors.NewValidationError(p.Name, kind, fmt.Sprintf("operation %q declares %s parameter %q twice", spec.Name, kind, p.Name))
			} else if dup {
				return errors.NewValidationError(p.Name, kind, fmt.Sprintf("operation %q declares %q as both %s and %s", spec.Name, p.Name, prev, kind))
			}
			seen[p.Name] = kind
		}
		return nil
	}
	if err := check("required", spec.Required); err != nil {
		return err
	}
	return check("optional", spec.Optional)
}
