package models

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnknownField is returned by Set for names the schema does not declare
var ErrUnknownField = errors.New("unknown field")

// Record holds the current value of every schema field. Keys arriving
// from the server that the schema does not declare are kept verbatim in
// a passthrough map so they survive a load/save round trip untouched.
type Record struct {
	schema *Schema
	values map[string]any
	extra  map[string]any
}

func newRecord(schema *Schema) *Record {
	return &Record{
		schema: schema,
		values: make(map[string]any, len(schema.fields)),
		extra:  make(map[string]any),
	}
}

// Schema returns the schema the record was built from
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the raw value of a field, known or passthrough
func (r *Record) Get(name string) (any, bool) {
	if v, ok := r.values[name]; ok {
		return v, true
	}
	v, ok := r.extra[name]
	return v, ok
}

// Value returns the field value, or fallback when the field is absent
func (r *Record) Value(name string, fallback any) any {
	if v, ok := r.Get(name); ok {
		return v
	}
	return fallback
}

// Bool returns a bool field's value, false when absent or mistyped
func (r *Record) Bool(name string) bool {
	v, _ := r.values[name].(bool)
	return v
}

// Int returns an int field's value, zero when absent or mistyped
func (r *Record) Int(name string) int {
	v, _ := r.values[name].(int)
	return v
}

// String returns a string field's value, empty when absent or mistyped
func (r *Record) String(name string) string {
	v, _ := r.values[name].(string)
	return v
}

// Set coerces value to the field's kind and stores it. This is the
// sole mutation path for single-field edits; unparseable input leaves
// the cell unchanged and returns the coercion error.
func (r *Record) Set(name string, value any) error {
	f, ok := r.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	coerced, err := Coerce(f.Kind, value)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	r.values[name] = coerced
	return nil
}

// Update merges the schema defaults under partial (partial wins) and
// writes every resulting key, overwriting existing cells and creating
// new ones. Known fields are coerced to their kind; keys the schema
// does not declare land in the passthrough map. Cells whose incoming
// value fails coercion are left unchanged; all such failures are
// joined into the returned error.
func (r *Record) Update(partial map[string]any) error {
	merged := r.schema.DefaultMap()
	for k, v := range partial {
		merged[k] = v
	}

	var errs []error
	for k, v := range merged {
		f, ok := r.schema.Lookup(k)
		if !ok {
			r.extra[k] = v
			continue
		}
		coerced, err := Coerce(f.Kind, v)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", k, err))
			continue
		}
		r.values[k] = coerced
	}
	return errors.Join(errs...)
}

// Flatten returns every known field plus the passthrough keys as a
// flat map, the shape the save endpoint expects
func (r *Record) Flatten() map[string]any {
	out := make(map[string]any, len(r.values)+len(r.extra))
	for k, v := range r.values {
		out[k] = v
	}
	for k, v := range r.extra {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy sharing the schema
func (r *Record) Clone() *Record {
	c := newRecord(r.schema)
	for k, v := range r.values {
		c.values[k] = v
	}
	for k, v := range r.extra {
		c.extra[k] = v
	}
	return c
}

// Equal reports whether two records hold the same values, passthrough
// keys included
func (r *Record) Equal(other *Record) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(r.values, other.values) &&
		reflect.DeepEqual(r.extra, other.extra)
}

// Coerce converts value to the given kind. Strings are parsed the way
// the server parses environment input: bools accept true/t/yes/y/1
// case-insensitively (anything else is false), ints must be decimal.
// JSON numbers arrive as float64 and are accepted when integral.
func Coerce(kind Kind, value any) (any, error) {
	if value == nil {
		return nil, errors.New("null value")
	}
	switch kind {
	case KindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return parseBool(v), nil
		case float64:
			return v != 0, nil
		case int:
			return v != 0, nil
		}
	case KindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("not an integer: %v", v)
			}
			return int(v), nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("not an integer: %q", v)
			}
			return n, nil
		}
	case KindString:
		switch v := value.(type) {
		case string:
			return v, nil
		case bool:
			return strconv.FormatBool(v), nil
		case float64, int, int64:
			return fmt.Sprintf("%v", v), nil
		}
	}
	return nil, fmt.Errorf("cannot convert %T to %s", value, kind)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true
	default:
		return false
	}
}
