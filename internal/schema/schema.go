package schema

// FieldType describes how a field's value is represented on the wire and
// how the codec converts it to and from buffer text.
type FieldType int

const (
	Text   FieldType = iota // plain string
	ID                      // positive integer identity
	Number                  // float64
	List                    // ordered []string, comma-joined in buffers
	Date                    // ISO date string, passed through verbatim
)

// Field declares one entity field: its wire name, type, and the validation
// rules applied to its buffer text.
type Field struct {
	Name  string
	Label string
	Type  FieldType
	Rules []Rule
}

// Schema declares a backend resource: its REST path segment, a display
// title, and its ordered field list.
type Schema struct {
	Resource string
	Title    string
	Fields   []Field
}

// Entity is one record of a resource as exchanged with the backend: a
// mapping from field name to typed value (string, float64, int64, []string,
// or the []any/float64 forms produced by encoding/json).
type Entity map[string]any

// Buffer is the text form of an entity mid-edit. Keys are exactly the
// schema's field names; list fields hold comma-joined text, numbers their
// string form, unset fields the empty string.
type Buffer map[string]string

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the schema's field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// EmptyBuffer returns a buffer with every schema field present and empty.
func (s Schema) EmptyBuffer() Buffer {
	buf := make(Buffer, len(s.Fields))
	for _, f := range s.Fields {
		buf[f.Name] = ""
	}
	return buf
}

// ID returns the entity's identity as an integer. The wire value may arrive
// as float64 (encoding/json) or int64 (codec output).
func (e Entity) ID() (int64, bool) {
	switch v := e["id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
