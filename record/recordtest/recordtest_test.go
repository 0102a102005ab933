package recordtest

import "testing"

func TestLoadScalarsAndArray(t *testing.T) {
	fx := MustLoad([]byte(`
schema:
  - name: id
    type: long
  - name: name
    type: string
  - name: tags
    type: array
    element:
      type: string
values:
  id: 48
  name: Bob
  tags: ["a", "b", "c"]
`))

	id, ok := fx.Record.ValueOf("id")
	if !ok {
		t.Fatal("id missing")
	}
	if n, _ := id.Int64(); n != 48 {
		t.Fatalf("id = %d, want 48", n)
	}

	tags, ok := fx.Record.ValueOf("tags")
	if !ok {
		t.Fatal("tags missing")
	}
	items, _ := tags.Items()
	if len(items) != 3 {
		t.Fatalf("len(tags) = %d, want 3", len(items))
	}
	if s, _ := items[1].Str(); s != "b" {
		t.Fatalf("tags[1] = %q, want %q", s, "b")
	}
}

func TestLoadNestedRecordAndMap(t *testing.T) {
	fx := MustLoad([]byte(`
schema:
  - name: address
    type: record
    fields:
      - name: city
        type: string
      - name: state
        type: string
  - name: attrs
    type: map
    element:
      type: string
values:
  address:
    city: Springfield
    state: IL
  attrs:
    - key: color
      value: blue
    - key: size
      value: large
`))

	addr, ok := fx.Record.ValueOf("address")
	if !ok {
		t.Fatal("address missing")
	}
	rec, ok := addr.Rec()
	if !ok {
		t.Fatal("address is not a record")
	}
	city, _ := rec.ValueOf("city")
	if s, _ := city.Str(); s != "Springfield" {
		t.Fatalf("city = %q", s)
	}

	attrs, ok := fx.Record.ValueOf("attrs")
	if !ok {
		t.Fatal("attrs missing")
	}
	entries, _ := attrs.Entries()
	if len(entries) != 2 || entries[0].Key != "color" || entries[1].Key != "size" {
		t.Fatalf("unexpected map entries: %+v", entries)
	}
}

func TestLoadChoicePicksMatchingAlternative(t *testing.T) {
	fx := MustLoad([]byte(`
schema:
  - name: id
    type: choice
    choices:
      - type: long
      - type: string
values:
  id: "abc-123"
`))

	id, _ := fx.Record.ValueOf("id")
	if s, ok := id.Str(); !ok || s != "abc-123" {
		t.Fatalf("id = %+v, want string abc-123", id)
	}
}

func TestLoadRejectsUnknownType(t *testing.T) {
	_, err := Load([]byte(`
schema:
  - name: x
    type: bogus
values: {}
`))
	if err == nil {
		t.Fatal("expected an error for an unknown field type")
	}
}
