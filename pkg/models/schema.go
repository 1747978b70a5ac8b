package models

// Kind is the scalar type of a settings field
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Field describes one settings field: its type, default value and
// where it appears in the editor
type Field struct {
	Name        string
	Kind        Kind
	Default     any
	Label       string
	Description string
	Tab         string   // leaf tab the field belongs to
	Secret      bool     // masked in display output
	Options     []string // non-empty marks a choice field
}

// Schema is an ordered set of field descriptors with name lookup
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from field descriptors. Later duplicates
// of a name silently win, matching last-registration semantics.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.index[f.Name] = i
	}
	return s
}

// Fields returns the descriptors in declaration order
func (s *Schema) Fields() []Field {
	return s.fields
}

// Lookup returns the descriptor for a field name
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the schema declares the field
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// FieldsForTab returns the descriptors assigned to a leaf tab,
// in declaration order
func (s *Schema) FieldsForTab(tab string) []Field {
	var out []Field
	for _, f := range s.fields {
		if f.Tab == tab {
			out = append(out, f)
		}
	}
	return out
}

// Defaults returns a fresh record holding every field's default value
func (s *Schema) Defaults() *Record {
	r := newRecord(s)
	for _, f := range s.fields {
		r.values[f.Name] = f.Default
	}
	return r
}

// DefaultMap returns the defaults as a flat map
func (s *Schema) DefaultMap() map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = f.Default
	}
	return out
}
