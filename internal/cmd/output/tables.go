package output

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arbaizam/fredclient/pkg/endpoints"
)

var titleCaser = cases.Title(language.English)

// Title turns a snake_case key into a column header ("realtime_start" -> "Realtime Start").
func Title(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// EndpointsTable lists operations. Wide adds the path and optional parameters.
func EndpointsTable(specs []endpoints.EndpointSpec, wide bool) Data {
	headers := []string{"Operation", "Required", "Description"}
	if wide {
		headers = []string{"Operation", "Path", "Required", "Optional", "Description"}
	}

	rows := make([][]string, 0, len(specs))
	for _, spec := range specs {
		required := paramList(spec.Required)
		if wide {
			rows = append(rows, []string{spec.Name, spec.Path, required, paramList(spec.Optional), spec.Description})
			continue
		}
		rows = append(rows, []string{spec.Name, required, spec.Description})
	}

	return Data{Headers: headers, Rows: rows}
}

// ParamsTable lists the parameters of one operation, required first.
func ParamsTable(spec endpoints.EndpointSpec) Data {
	rows := make([][]string, 0, len(spec.Required)+len(spec.Optional))
	for _, p := range spec.Required {
		rows = append(rows, []string{p.Name, p.Type.String(), "yes"})
	}
	for _, p := range spec.Optional {
		rows = append(rows, []string{p.Name, p.Type.String(), "no"})
	}
	return Data{
		Headers:         []string{"Parameter", "Type", "Required"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter},
	}
}

func paramList(params []endpoints.Param) string {
	if len(params) == 0 {
		return "-"
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// ResultTable renders the record list of a FRED response ("observations",
// "seriess", "categories", ...) as a table. It returns nil when value holds
// no list of objects, so callers fall back to JSON.
func ResultTable(value any) *Data {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	records := recordList(obj)
	if len(records) == 0 {
		return nil
	}

	columns := columnsOf(records)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = Title(c)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = cell(rec[c])
		}
		rows[i] = row
	}

	return &Data{Headers: headers, Rows: rows}
}

// recordList returns the first non-empty list of objects in key order.
func recordList(obj map[string]any) []map[string]any {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		list, ok := obj[k].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		records := make([]map[string]any, 0, len(list))
		for _, item := range list {
			rec, ok := item.(map[string]any)
			if !ok {
				records = nil
				break
			}
			records = append(records, rec)
		}
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

// columnsOf returns the sorted union of record keys, with "id" and "date" first.
func columnsOf(records []map[string]any) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	rank := func(k string) int {
		switch k {
		case "id":
			return 0
		case "date":
			return 1
		}
		return 2
	}
	sort.Slice(columns, func(i, j int) bool {
		ri, rj := rank(columns[i]), rank(columns[j])
		if ri != rj {
			return ri < rj
		}
		return columns[i] < columns[j]
	})
	return columns
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(x)
	}
}
