package record

import "golang.org/x/exp/slices"

// DataTypeKind distinguishes the shape of a DataType (spec §3).
type DataTypeKind int

const (
	ScalarType DataTypeKind = iota
	ArrayType
	MapType
	RecordType
	ChoiceType
)

// DataType describes the declared type of a RecordField. Exactly one of
// the payload fields is meaningful, selected by Which.
type DataType struct {
	Which DataTypeKind

	// Scalar is valid when Which == ScalarType.
	Scalar Kind

	// Element is valid when Which == ArrayType (element type of the
	// array) or Which == MapType (value type of the map).
	Element *DataType

	// Schema is valid when Which == RecordType.
	Schema *RecordSchema

	// Alternatives is valid when Which == ChoiceType: DataType resolves
	// to the first alternative whose runtime Kind matches a given Value
	// (spec §3).
	Alternatives []DataType
}

func Scalar(k Kind) DataType { return DataType{Which: ScalarType, Scalar: k} }

func ArrayOf(elem DataType) DataType {
	return DataType{Which: ArrayType, Element: &elem}
}

func MapOf(elem DataType) DataType {
	return DataType{Which: MapType, Element: &elem}
}

func RecordOf(schema *RecordSchema) DataType {
	return DataType{Which: RecordType, Schema: schema}
}

func Choice(alts ...DataType) DataType {
	return DataType{Which: ChoiceType, Alternatives: alts}
}

// Resolve returns the concrete DataType that applies to a value of kind k,
// following CHOICE resolution (first alternative whose Kind matches).
// Non-choice types resolve to themselves.
func (d DataType) Resolve(k Kind) DataType {
	if d.Which != ChoiceType {
		return d
	}
	for _, alt := range d.Alternatives {
		if alt.Which == ScalarType && alt.Scalar == k {
			return alt
		}
		if alt.Which == ArrayType && k == KindArray {
			return alt
		}
		if alt.Which == MapType && k == KindMap {
			return alt
		}
		if alt.Which == RecordType && k == KindRecord {
			return alt
		}
	}
	if len(d.Alternatives) > 0 {
		return d.Alternatives[0]
	}
	return d
}

// RecordField is one named, typed slot of a RecordSchema.
type RecordField struct {
	Name     string
	Type     DataType
	Nullable bool
}

// RecordSchema is an ordered collection of RecordFields. Field order is
// semantically significant: it drives wildcard and descendant traversal
// order (spec invariant 6).
type RecordSchema struct {
	fields []RecordField
	index  map[string]int
}

// NewSchema builds a RecordSchema from an ordered field list. Field names
// must be unique; duplicates are dropped in favor of the first occurrence.
func NewSchema(fields ...RecordField) *RecordSchema {
	s := &RecordSchema{
		fields: make([]RecordField, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		s.addField(f)
	}
	return s
}

func (s *RecordSchema) addField(f RecordField) {
	if _, exists := s.index[f.Name]; exists {
		return
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
}

// Fields returns the fields in declared order.
func (s *RecordSchema) Fields() []RecordField {
	if s == nil {
		return nil
	}
	return s.fields
}

// Field looks up a field by name.
func (s *RecordSchema) Field(name string) (RecordField, bool) {
	if s == nil {
		return RecordField{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return RecordField{}, false
	}
	return s.fields[i], true
}

// withField returns a new schema identical to s but with field added (or
// replacing an existing field of the same name), used when a write
// promotes an inactive field.
func (s *RecordSchema) withField(f RecordField) *RecordSchema {
	fields := slices.Clone(s.Fields())
	if i := slices.IndexFunc(fields, func(existing RecordField) bool { return existing.Name == f.Name }); i >= 0 {
		fields[i] = f
		return NewSchema(fields...)
	}
	fields = append(fields, f)
	return NewSchema(fields...)
}
