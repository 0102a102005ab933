package record

import "golang.org/x/exp/slices"

// Record owns a RecordSchema and a name-keyed map of materialized values
// (spec §3). Values may exist for fields the schema does not yet declare —
// those are tracked as "inactive" until IncorporateInactiveFields promotes
// them, which is how updateValue can introduce a field RecordPath was
// asked to write but the schema never anticipated (spec §4.4, §6).
type Record struct {
	schema   *RecordSchema
	values   map[string]Value
	inactive []RecordField
}

// NewRecord builds an empty record against schema. schema may be nil, in
// which case every write is initially inactive.
func NewRecord(schema *RecordSchema) *Record {
	if schema == nil {
		schema = NewSchema()
	}
	return &Record{schema: schema, values: make(map[string]Value)}
}

// NewRecordWithValues builds a record pre-populated with the given
// name -> value materialization. Names not present in schema are recorded
// as inactive, inferring a DataType from the supplied value's Kind.
func NewRecordWithValues(schema *RecordSchema, values map[string]Value) *Record {
	r := NewRecord(schema)
	for name, v := range values {
		r.values[name] = v
		if _, ok := r.schema.Field(name); !ok {
			r.markInactive(name, v)
		}
	}
	return r
}

func (r *Record) Schema() *RecordSchema { return r.schema }

// ValueOf returns the materialized value for name, if any.
func (r *Record) ValueOf(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// GetField returns the RecordField describing name, whether it is
// currently active in the schema or only pending as an inactive field.
func (r *Record) GetField(name string) (RecordField, bool) {
	if f, ok := r.schema.Field(name); ok {
		return f, true
	}
	i := slices.IndexFunc(r.inactive, func(f RecordField) bool { return f.Name == name })
	if i < 0 {
		return RecordField{}, false
	}
	return r.inactive[i], true
}

// FieldNames returns the schema's active field names in declared order
// (spec invariant 6 — wildcard iteration visits fields in schema order).
func (r *Record) FieldNames() []string {
	fields := r.schema.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// ToMap snapshots every materialized value keyed by field name.
func (r *Record) ToMap() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// SetValue materializes v under name, coercion already applied by the
// caller (recordpath's coerceToType). If name is not part of the active schema, it is
// tracked as an inactive field until IncorporateInactiveFields is called.
func (r *Record) SetValue(name string, v Value) {
	r.values[name] = v
	if _, ok := r.schema.Field(name); !ok {
		r.markInactive(name, v)
	}
}

func (r *Record) markInactive(name string, v Value) {
	if slices.ContainsFunc(r.inactive, func(f RecordField) bool { return f.Name == name }) {
		return
	}
	r.inactive = append(r.inactive, RecordField{
		Name:     name,
		Type:     Scalar(v.Kind()),
		Nullable: true,
	})
}

// InactiveFields returns the fields that have materialized values but are
// not yet part of the active schema, in the order they were first written.
func (r *Record) InactiveFields() []RecordField {
	return slices.Clone(r.inactive)
}

// IncorporateInactiveFields promotes every pending inactive field into the
// active schema and returns the names that were promoted (spec §3, §6).
func (r *Record) IncorporateInactiveFields() []string {
	if len(r.inactive) == 0 {
		return nil
	}
	promoted := make([]string, 0, len(r.inactive))
	schema := r.schema
	for _, f := range r.inactive {
		schema = schema.withField(f)
		promoted = append(promoted, f.Name)
	}
	r.schema = schema
	r.inactive = nil
	return promoted
}
