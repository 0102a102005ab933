package recordpath

import (
	"testing"

	"github.com/flowforge/datapath/expr"
	"github.com/flowforge/datapath/record"
)

func mustCompile(t *testing.T, src string) *CompiledPath {
	t.Helper()
	cp, err := Compile(src)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return cp
}

// S1: child + array multi-index with mutation.
func TestMultiIndexEvaluateAndMutate(t *testing.T) {
	nums := make([]record.Value, 10)
	for i := range nums {
		nums[i] = record.Long(int64(i))
	}
	schema := record.NewSchema(
		record.RecordField{Name: "id", Type: record.Scalar(record.KindLong)},
		record.RecordField{Name: "numbers", Type: record.ArrayOf(record.Scalar(record.KindLong))},
	)
	rec := record.NewRecordWithValues(schema, map[string]record.Value{
		"id":      record.Long(48),
		"numbers": record.Array(nums),
	})

	cp := mustCompile(t, "/numbers[3,6,-1,-2]")
	results, err := cp.Evaluate(rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	wantBefore := []int64{3, 6, 9, 8}
	for i, fv := range results {
		n, _ := fv.Value().Int64()
		if n != wantBefore[i] {
			t.Fatalf("result %d: got %d, want %d", i, n, wantBefore[i])
		}
	}
	for _, fv := range results {
		if err := fv.UpdateValue(record.Long(99)); err != nil {
			t.Fatalf("updateValue: %v", err)
		}
	}
	final, _ := rec.ValueOf("numbers")
	items, _ := final.Items()
	want := []int64{0, 1, 2, 99, 4, 5, 99, 7, 99, 99}
	for i, v := range items {
		n, _ := v.Int64()
		if n != want[i] {
			t.Fatalf("numbers[%d] = %d, want %d", i, n, want[i])
		}
	}
}

// S2: descendant search order and parentRecord.
func TestDescendantIdOrderAndParentRecord(t *testing.T) {
	mainSchema := record.NewSchema(
		record.RecordField{Name: "id", Type: record.Scalar(record.KindLong)},
	)
	mainAccount := record.NewRecordWithValues(mainSchema, map[string]record.Value{
		"id": record.Long(1),
	})
	rootSchema := record.NewSchema(
		record.RecordField{Name: "id", Type: record.Scalar(record.KindLong)},
		record.RecordField{Name: "mainAccount", Type: record.RecordOf(mainSchema)},
	)
	root := record.NewRecordWithValues(rootSchema, map[string]record.Value{
		"id":          record.Long(48),
		"mainAccount": record.RecordValue(mainAccount),
	})

	cp := mustCompile(t, "//id")
	results, err := cp.Evaluate(root)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	n0, _ := results[0].Value().Int64()
	n1, _ := results[1].Value().Int64()
	if n0 != 48 || n1 != 1 {
		t.Fatalf("got order [%d, %d], want [48, 1]", n0, n1)
	}
	if results[1].ParentRecord() != mainAccount {
		t.Fatalf("expected second result's parentRecord to be mainAccount")
	}
}

// S3: predicate with an absolute reference on the right-hand side.
func TestPredicateWithAbsoluteReference(t *testing.T) {
	addrSchema := record.NewSchema(record.RecordField{Name: "state", Type: record.Scalar(record.KindString)})
	detailsSchema := record.NewSchema(record.RecordField{Name: "preferredState", Type: record.Scalar(record.KindString)})

	addr1 := record.NewRecordWithValues(addrSchema, map[string]record.Value{"state": record.String("CA")})
	addr2 := record.NewRecordWithValues(addrSchema, map[string]record.Value{"state": record.String("NY")})
	details := record.NewRecordWithValues(detailsSchema, map[string]record.Value{"preferredState": record.String("NY")})

	rootSchema := record.NewSchema(
		record.RecordField{Name: "address1", Type: record.RecordOf(addrSchema)},
		record.RecordField{Name: "address2", Type: record.RecordOf(addrSchema)},
		record.RecordField{Name: "details", Type: record.RecordOf(detailsSchema)},
	)
	root := record.NewRecordWithValues(rootSchema, map[string]record.Value{
		"address1": record.RecordValue(addr1),
		"address2": record.RecordValue(addr2),
		"details":  record.RecordValue(details),
	})

	cp := mustCompile(t, "/*[./state = /details/preferredState]")
	results, err := cp.Evaluate(root)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(results))
	}
	f, ok := results[0].Field()
	if !ok || f.Name != "address2" {
		t.Fatalf("expected address2, got %+v (ok=%v)", f, ok)
	}
}

// S5: unescapeJson's convertToRecord flag.
func TestUnescapeJsonFlagProducesRecord(t *testing.T) {
	schema := record.NewSchema(record.RecordField{Name: "json_str", Type: record.Scalar(record.KindString)})
	rec := record.NewRecordWithValues(schema, map[string]record.Value{
		"json_str": record.String(`{"a":1}`),
	})

	mapForm, err := Compile(`unescapeJson(/json_str)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	mapResults, err := mapForm.Evaluate(rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(mapResults) != 1 || mapResults[0].Value().Kind() != record.KindMap {
		t.Fatalf("expected a single Map result, got %+v", mapResults)
	}

	recordForm := mustCompile(t, `unescapeJson(/json_str, 'true')`)
	recResults, err := recordForm.Evaluate(rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(recResults) != 1 || recResults[0].Value().Kind() != record.KindRecord {
		t.Fatalf("expected a single Record result, got %+v", recResults)
	}
	sub, _ := recResults[0].Value().Rec()
	a, ok := sub.ValueOf("a")
	if !ok {
		t.Fatalf("expected field 'a'")
	}
	n, _ := a.Number()
	if n != 1 {
		t.Fatalf("expected a == 1, got %v", n)
	}
}

func TestRootIsNotMutable(t *testing.T) {
	schema := record.NewSchema(record.RecordField{Name: "id", Type: record.Scalar(record.KindLong)})
	rec := record.NewRecordWithValues(schema, map[string]record.Value{"id": record.Long(1)})

	cp := mustCompile(t, "/id")
	results, err := cp.Evaluate(rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	root := results[0].Parent()
	if root == nil {
		t.Fatalf("expected /id to carry a parent (the root)")
	}
	err = root.UpdateValue(record.Long(2))
	if _, ok := err.(*expr.NotMutableError); !ok {
		t.Fatalf("expected NotMutableError, got %v", err)
	}
}

func TestParentAxisSkipsArrayWrapper(t *testing.T) {
	nums := []record.Value{record.Long(1), record.Long(2)}
	schema := record.NewSchema(record.RecordField{Name: "numbers", Type: record.ArrayOf(record.Scalar(record.KindLong))})
	rec := record.NewRecordWithValues(schema, map[string]record.Value{"numbers": record.Array(nums)})

	cp := mustCompile(t, "/numbers[0]/..")
	results, err := cp.Evaluate(rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 1 || results[0].Value().Kind() != record.KindRecord {
		t.Fatalf("expected .. from an array element to land on the record, got %+v", results)
	}
}

func TestWildcardChildPreservesSchemaOrder(t *testing.T) {
	schema := record.NewSchema(
		record.RecordField{Name: "b", Type: record.Scalar(record.KindLong)},
		record.RecordField{Name: "a", Type: record.Scalar(record.KindLong)},
	)
	rec := record.NewRecordWithValues(schema, map[string]record.Value{
		"a": record.Long(1),
		"b": record.Long(2),
	})

	cp := mustCompile(t, "/*")
	results, err := cp.Evaluate(rec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	f0, _ := results[0].Field()
	f1, _ := results[1].Field()
	if f0.Name != "b" || f1.Name != "a" {
		t.Fatalf("expected schema order [b, a], got [%s, %s]", f0.Name, f1.Name)
	}
}

func TestCompilerCachesBySource(t *testing.T) {
	c := NewCompiler(2)
	a, err := c.Compile("/id")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := c.Compile("/id")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Fatalf("expected the cached compile to return the same *CompiledPath")
	}
}
