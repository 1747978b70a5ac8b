package cli

import (
	"fmt"
	"strings"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: table, json, or yaml)", format)
}

// ValidateFieldName checks a field name against the schema. Unknown
// names get nearby suggestions when the input looks like a fragment.
func ValidateFieldName(schema *models.Schema, name string) error {
	if schema.Has(name) {
		return nil
	}

	var near []string
	for _, f := range schema.Fields() {
		if strings.Contains(f.Name, name) {
			near = append(near, f.Name)
		}
	}
	if len(near) > 0 && len(near) <= 5 {
		return fmt.Errorf("unknown field %q, did you mean: %s", name, strings.Join(near, ", "))
	}
	return fmt.Errorf("unknown field %q, run 'pdnsadmin show' to list fields", name)
}

// ValidateTabPath checks a --tab argument against the tab tree; empty
// means no filter and passes
func ValidateTabPath(tabs models.Tabs, path string) error {
	if path == "" {
		return nil
	}
	if _, ok := tabs.Qualify(path); ok {
		return nil
	}

	var known []string
	for _, t := range tabs {
		if t.Parent != "" {
			known = append(known, t.Parent+"/"+t.ID)
		} else {
			known = append(known, t.ID)
		}
	}
	return fmt.Errorf("unknown tab %q (known: %s)", path, strings.Join(known, ", "))
}

// Assignment is one field change requested on the command line
type Assignment struct {
	Field string
	Value string
}

// ParseAssignments accepts either field=value arguments or alternating
// field value pairs; the two forms cannot be mixed. Only the first =
// splits, so filter expressions keep their own equals signs.
func ParseAssignments(args []string) ([]Assignment, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no assignments given")
	}

	assignments := true
	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			assignments = false
			break
		}
	}

	var out []Assignment
	if assignments {
		for _, arg := range args {
			name, value, _ := strings.Cut(arg, "=")
			if name == "" {
				return nil, fmt.Errorf("bad assignment %q", arg)
			}
			out = append(out, Assignment{Field: name, Value: value})
		}
		return out, nil
	}

	if len(args)%2 != 0 {
		return nil, fmt.Errorf("expected field=value assignments or field value pairs")
	}
	for i := 0; i < len(args); i += 2 {
		out = append(out, Assignment{Field: args[i], Value: args[i+1]})
	}
	return out, nil
}
