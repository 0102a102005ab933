// Package recordtest builds record.Record fixtures from a small YAML
// description, so table-driven RecordPath tests can write schema and data
// as a literal instead of constructing record.Value trees by hand. It is
// test tooling only: nothing in package recordpath imports it.
package recordtest

import (
	"encoding/base64"
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/flowforge/datapath/date"
	"github.com/flowforge/datapath/record"
)

// Fixture is a schema and a record built against it, decoded from one YAML
// document.
type Fixture struct {
	Schema *record.RecordSchema
	Record *record.Record
}

// Load parses a YAML document shaped like:
//
//	schema:
//	  - name: id
//	    type: long
//	  - name: tags
//	    type: array
//	    element: {type: string}
//	values:
//	  id: 48
//	  tags: ["a", "b"]
//
// into a Fixture. Map-typed fields are written as an ordered list of
// {key, value} entries rather than a YAML mapping, since YAML/JSON map
// decoding does not preserve key order and map entry order is semantically
// significant (wildcard iteration order).
func Load(doc []byte) (*Fixture, error) {
	var raw struct {
		Schema []fieldSpec            `json:"schema"`
		Values map[string]interface{} `json:"values"`
	}
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("recordtest: parse fixture: %w", err)
	}

	fields := make([]record.RecordField, 0, len(raw.Schema))
	for _, fs := range raw.Schema {
		f, err := fs.field()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	schema := record.NewSchema(fields...)

	values := make(map[string]record.Value, len(raw.Values))
	for _, f := range fields {
		rv, ok := raw.Values[f.Name]
		if !ok {
			continue
		}
		v, err := valueFrom(rv, f.Type)
		if err != nil {
			return nil, fmt.Errorf("recordtest: field %q: %w", f.Name, err)
		}
		values[f.Name] = v
	}

	return &Fixture{Schema: schema, Record: record.NewRecordWithValues(schema, values)}, nil
}

// MustLoad is Load, panicking on error. Intended for test table literals
// where the fixture is a compile-time constant and a parse failure is a
// bug in the test itself.
func MustLoad(doc []byte) *Fixture {
	f, err := Load(doc)
	if err != nil {
		panic(err)
	}
	return f
}

type fieldSpec struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Nullable bool        `json:"nullable"`
	Element  *fieldSpec  `json:"element"`
	Fields   []fieldSpec `json:"fields"`
	Choices  []fieldSpec `json:"choices"`
}

func (fs fieldSpec) field() (record.RecordField, error) {
	dt, err := fs.dataType()
	if err != nil {
		return record.RecordField{}, err
	}
	return record.RecordField{Name: fs.Name, Type: dt, Nullable: fs.Nullable}, nil
}

func (fs fieldSpec) dataType() (record.DataType, error) {
	switch fs.Type {
	case "bool", "boolean":
		return record.Scalar(record.KindBool), nil
	case "int":
		return record.Scalar(record.KindInt), nil
	case "long":
		return record.Scalar(record.KindLong), nil
	case "float":
		return record.Scalar(record.KindFloat), nil
	case "double":
		return record.Scalar(record.KindDouble), nil
	case "string":
		return record.Scalar(record.KindString), nil
	case "bytes":
		return record.Scalar(record.KindBytes), nil
	case "date":
		return record.Scalar(record.KindDate), nil
	case "array":
		if fs.Element == nil {
			return record.DataType{}, fmt.Errorf("recordtest: array field %q missing element type", fs.Name)
		}
		elem, err := fs.Element.dataType()
		if err != nil {
			return record.DataType{}, err
		}
		return record.ArrayOf(elem), nil
	case "map":
		if fs.Element == nil {
			return record.DataType{}, fmt.Errorf("recordtest: map field %q missing element type", fs.Name)
		}
		elem, err := fs.Element.dataType()
		if err != nil {
			return record.DataType{}, err
		}
		return record.MapOf(elem), nil
	case "record":
		fields := make([]record.RecordField, 0, len(fs.Fields))
		for _, sub := range fs.Fields {
			f, err := sub.field()
			if err != nil {
				return record.DataType{}, err
			}
			fields = append(fields, f)
		}
		return record.RecordOf(record.NewSchema(fields...)), nil
	case "choice":
		alts := make([]record.DataType, 0, len(fs.Choices))
		for _, c := range fs.Choices {
			dt, err := c.dataType()
			if err != nil {
				return record.DataType{}, err
			}
			alts = append(alts, dt)
		}
		return record.Choice(alts...), nil
	default:
		return record.DataType{}, fmt.Errorf("recordtest: unknown field type %q", fs.Type)
	}
}

func valueFrom(raw interface{}, dt record.DataType) (record.Value, error) {
	if raw == nil {
		return record.Null, nil
	}
	if dt.Which == record.ChoiceType {
		dt = chooseAlternative(raw, dt)
	}
	switch dt.Which {
	case record.ScalarType:
		return scalarValue(raw, dt.Scalar)
	case record.ArrayType:
		items, ok := raw.([]interface{})
		if !ok {
			return record.Null, fmt.Errorf("expected an array, got %T", raw)
		}
		vals := make([]record.Value, len(items))
		for i, it := range items {
			v, err := valueFrom(it, *dt.Element)
			if err != nil {
				return record.Null, err
			}
			vals[i] = v
		}
		return record.Array(vals), nil
	case record.MapType:
		items, ok := raw.([]interface{})
		if !ok {
			return record.Null, fmt.Errorf("expected a list of {key, value} entries for a map, got %T", raw)
		}
		entries := make([]record.MapEntry, 0, len(items))
		for _, it := range items {
			entryMap, ok := it.(map[string]interface{})
			if !ok {
				return record.Null, fmt.Errorf("map entry must be a {key, value} mapping")
			}
			key, _ := entryMap["key"].(string)
			v, err := valueFrom(entryMap["value"], *dt.Element)
			if err != nil {
				return record.Null, err
			}
			entries = append(entries, record.MapEntry{Key: key, Value: v})
		}
		return record.Map(entries), nil
	case record.RecordType:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return record.Null, fmt.Errorf("expected an object, got %T", raw)
		}
		values := make(map[string]record.Value, len(m))
		for _, f := range dt.Schema.Fields() {
			rv, present := m[f.Name]
			if !present {
				continue
			}
			v, err := valueFrom(rv, f.Type)
			if err != nil {
				return record.Null, fmt.Errorf("field %q: %w", f.Name, err)
			}
			values[f.Name] = v
		}
		return record.RecordValue(record.NewRecordWithValues(dt.Schema, values)), nil
	default:
		return record.Null, fmt.Errorf("unsupported data type")
	}
}

// chooseAlternative picks the first CHOICE alternative whose declared shape
// matches raw's decoded JSON shape, mirroring DataType.Resolve's own
// first-match rule.
func chooseAlternative(raw interface{}, dt record.DataType) record.DataType {
	for _, alt := range dt.Alternatives {
		switch alt.Which {
		case record.ScalarType:
			if scalarMatches(raw, alt.Scalar) {
				return alt
			}
		case record.ArrayType, record.MapType:
			if _, ok := raw.([]interface{}); ok {
				return alt
			}
		case record.RecordType:
			if _, ok := raw.(map[string]interface{}); ok {
				return alt
			}
		}
	}
	if len(dt.Alternatives) > 0 {
		return dt.Alternatives[0]
	}
	return dt
}

func scalarMatches(raw interface{}, k record.Kind) bool {
	switch k {
	case record.KindBool:
		_, ok := raw.(bool)
		return ok
	case record.KindString, record.KindBytes, record.KindDate:
		_, ok := raw.(string)
		return ok
	case record.KindInt, record.KindLong, record.KindFloat, record.KindDouble:
		_, ok := raw.(float64)
		return ok
	}
	return false
}

func scalarValue(raw interface{}, k record.Kind) (record.Value, error) {
	switch k {
	case record.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return record.Null, fmt.Errorf("expected a bool, got %T", raw)
		}
		return record.Bool(b), nil
	case record.KindInt:
		n, err := asFloat(raw)
		if err != nil {
			return record.Null, err
		}
		return record.Int(int32(n)), nil
	case record.KindLong:
		n, err := asFloat(raw)
		if err != nil {
			return record.Null, err
		}
		return record.Long(int64(n)), nil
	case record.KindFloat:
		n, err := asFloat(raw)
		if err != nil {
			return record.Null, err
		}
		return record.Float(float32(n)), nil
	case record.KindDouble:
		n, err := asFloat(raw)
		if err != nil {
			return record.Null, err
		}
		return record.Double(n), nil
	case record.KindString:
		s, ok := raw.(string)
		if !ok {
			return record.Null, fmt.Errorf("expected a string, got %T", raw)
		}
		return record.String(s), nil
	case record.KindBytes:
		s, ok := raw.(string)
		if !ok {
			return record.Null, fmt.Errorf("expected a base64 string for bytes, got %T", raw)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return record.Null, fmt.Errorf("decode bytes: %w", err)
		}
		return record.Bytes(b), nil
	case record.KindDate:
		s, ok := raw.(string)
		if !ok {
			return record.Null, fmt.Errorf("expected an RFC3339 string for a date, got %T", raw)
		}
		t, ok := date.Parse([]byte(s))
		if !ok {
			return record.Null, fmt.Errorf("unparseable date %q", s)
		}
		return record.Date(t), nil
	default:
		return record.Null, fmt.Errorf("unsupported scalar kind %v", k)
	}
}

func asFloat(raw interface{}) (float64, error) {
	n, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
	return n, nil
}
