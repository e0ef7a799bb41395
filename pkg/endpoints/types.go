// Package endpoints holds the FRED endpoint registry: one EndpointSpec per
// operation, naming the URL path and the typed required and optional query
// parameters. A Registry is immutable once built and safe to share between
// goroutines without locking.
package endpoints

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ParamType is the primitive type a parameter value must have.
type ParamType int

// Parameter types. The zero value is invalid so an unset type is caught at
// registry construction.
const (
	String ParamType = iota + 1
	Integer
)

// validators maps each ParamType to its value check.
var validators = map[ParamType]func(any) bool{
	String:  isString,
	Integer: isWholeNumber,
}

// ParseParamType converts a type tag ("string", "integer") into a ParamType.
func ParseParamType(s string) (ParamType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str":
		return String, nil
	case "integer", "int":
		return Integer, nil
	default:
		return 0, fmt.Errorf("unknown parameter type %q", s)
	}
}

// String returns the type tag.
func (t ParamType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("ParamType(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared types.
func (t ParamType) Valid() bool {
	_, ok := validators[t]
	return ok
}

// Accepts reports whether v satisfies the type.
// Integer accepts whole numbers only: Go integer kinds, floats without a
// fractional part and integral json.Number values. Numeric strings are rejected.
func (t ParamType) Accepts(v any) bool {
	check, ok := validators[t]
	if !ok {
		return false
	}
	return check(v)
}

// MarshalText implements encoding.TextMarshaler.
func (t ParamType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid parameter type %d", int(t))
	}
	return []byte(t.String()), nil
}

// MarshalYAML renders the type as its text form in YAML output.
func (t ParamType) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid parameter type %d", int(t))
	}
	return t.String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ParamType) UnmarshalText(text []byte) error {
	parsed, err := ParseParamType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isWholeNumber(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isWholeFloat(float64(n))
	case float64:
		return isWholeFloat(n)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

// isWholeFloat accepts floats that convert to an int64 without loss.
func isWholeFloat(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return false
	}
	return f >= math.MinInt64 && f < -math.MinInt64
}

// Param is one named, typed query parameter.
type Param struct {
	Name string    `json:"name" yaml:"name"`
	Type ParamType `json:"type" yaml:"type"`
}

// EndpointSpec describes one FRED operation.
type EndpointSpec struct {
	Name        string  `json:"name" yaml:"name"`
	Path        string  `json:"path" yaml:"path"`
	Required    []Param `json:"required,omitempty" yaml:"required,omitempty"`
	Optional    []Param `json:"optional,omitempty" yaml:"optional,omitempty"`
	Description string  `json:"description" yaml:"description"`
}

// RequiredParam returns the declared required parameter with the given name.
func (s EndpointSpec) RequiredParam(name string) (Param, bool) {
	return findParam(s.Required, name)
}

// OptionalParam returns the declared optional parameter with the given name.
func (s EndpointSpec) OptionalParam(name string) (Param, bool) {
	return findParam(s.Optional, name)
}

// Param returns the declared parameter with the given name, required or optional.
func (s EndpointSpec) Param(name string) (Param, bool) {
	if p, ok := s.RequiredParam(name); ok {
		return p, true
	}
	return s.OptionalParam(name)
}

func (s EndpointSpec) clone() EndpointSpec {
	out := s
	out.Required = append([]Param(nil), s.Required...)
	out.Optional = append([]Param(nil), s.Optional...)
	return out
}

func findParam(params []Param, name string) (Param, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
