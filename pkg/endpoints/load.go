package endpoints

import (
	"bytes"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/arbaizam/fredclient/pkg/errors"
)

// File is the on-disk layout of a registry:
//
//	endpoints:
//	  - name: series
//	    path: series
//	    description: Get an economic data series.
//	    required:
//	      - name: series_id
//	        type: string
//	    optional:
//	      - name: realtime_start
//	        type: string
type File struct {
	Endpoints []fileEndpoint `yaml:"endpoints"`
}

type fileEndpoint struct {
	Name        string      `yaml:"name"`
	Path        string      `yaml:"path"`
	Description string      `yaml:"description"`
	Required    []fileParam `yaml:"required,omitempty"`
	Optional    []fileParam `yaml:"optional,omitempty"`
}

type fileParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Load reads a YAML registry from r.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "endpoint registry", err)
	}
	return parse(data, "")
}

// LoadFile reads a YAML registry from path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, path)
}

// Marshal renders r in the layout Load accepts.
func Marshal(r *Registry) ([]byte, error) {
	f := File{Endpoints: make([]fileEndpoint, 0, r.Len())}
	for _, spec := range r.specs {
		f.Endpoints = append(f.Endpoints, fileEndpoint{
			Name:        spec.Name,
			Path:        spec.Path,
			Description: spec.Description,
			Required:    toFileParams(spec.Required),
			Optional:    toFileParams(spec.Optional),
		})
	}
	return yaml.MarshalWithOptions(f, yaml.Indent(2), yaml.IndentSequence(true))
}

func parse(data []byte, file string) (*Registry, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.Decode(&f); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}

	specs := make([]EndpointSpec, 0, len(f.Endpoints))
	for _, e := range f.Endpoints {
		req, err := fromFileParams(e.Name, e.Required)
		if err != nil {
			return nil, err
		}
		opt, err := fromFileParams(e.Name, e.Optional)
		if err != nil {
			return nil, err
		}
		specs = append(specs, EndpointSpec{
			Name:        e.Name,
			Path:        e.Path,
			Required:    req,
			Optional:    opt,
			Description: e.Description,
		})
	}
	return New(specs...)
}

func fromFileParams(operation string, in []fileParam) ([]Param, error) {
	out := make([]Param, 0, len(in))
	for _, p := range in {
		t, err := ParseParamType(p.Type)
		if err != nil {
			return nil, errors.NewValidationError(p.Name, p.Type, operation+": "+err.Error())
		}
		out = append(out, Param{Name: p.Name, Type: t})
	}
	return out, nil
}

func toFileParams(in []Param) []fileParam {
	if len(in) == 0 {
		return nil
	}
	out := make([]fileParam, len(in))
	for i, p := range in {
		out[i] = fileParam{Name: p.Name, Type: p.Type.String()}
	}
	return out
}
