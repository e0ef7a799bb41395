package dispatch

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/arbaizam/fredclient/pkg/endpoints"
	"github.com/arbaizam/fredclient/pkg/errors"
)

// Validate checks args against the declared parameters of spec. Required
// parameters must be present and non-nil; present optional parameters must
// match their type. Undeclared keys are not checked.
func Validate(spec endpoints.EndpointSpec, args Args) error {
	for _, p := range spec.Required {
		v, ok := args[p.Name]
		if !ok || isNil(v) {
			return errors.NewMissingParameterError(spec.Name, p.Name)
		}
		if !p.Type.Accepts(v) {
			return errors.NewInvalidParameterTypeError(spec.Name, p.Name, p.Type.String(), v)
		}
	}
	for _, p := range spec.Optional {
		v, ok := args[p.Name]
		if !ok || isNil(v) {
			continue
		}
		if !p.Type.Accepts(v) {
			return errors.NewInvalidParameterTypeError(spec.Name, p.Name, p.Type.String(), v)
		}
	}
	return nil
}

// Encode renders args as a query string, skipping nil values.
func Encode(args Args) url.Values {
	query := make(url.Values, len(args))
	for k, v := range args {
		if isNil(v) {
			continue
		}
		query.Set(k, FormatValue(v))
	}
	return query
}

// isNil reports whether v is nil or a typed nil pointer, map, slice,
// interface, channel or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// FormatValue renders one argument the way FRED expects it on the wire.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ",")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Coerce converts textual values (from a command line or a query string) into
// the declared type of each parameter of spec. Integer-typed parameters are
// parsed with strconv; everything else stays a string.
func Coerce(spec endpoints.EndpointSpec, raw map[string]string) (Args, error) {
	args := make(Args, len(raw))
	for k, v := range raw {
		p, declared := spec.Param(k)
		if !declared || p.Type != endpoints.Integer {
			args[k] = v
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, errors.NewInvalidParameterTypeError(spec.Name, k, p.Type.String(), v)
		}
		args[k] = n
	}
	return args, nil
}

func sortedKeys(args Args) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
