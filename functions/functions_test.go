package functions

import (
	"testing"

	"github.com/flowforge/datapath/record"
)

func TestSubstringClampsAndNegativeEnd(t *testing.T) {
	if got := Substring("hello world", 0, 5); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := Substring("hello world", 6, -3); got != "wor" {
		t.Fatalf("got %q", got)
	}
	if got := Substring("hi", 1, 0); got != "" {
		t.Fatalf("expected empty string for begin>end, got %q", got)
	}
}

func TestPadLeftTruncatesLongPad(t *testing.T) {
	if got := PadLeft("MyString", 10, "aVeryLongPadding"); got != "aVMyString" {
		t.Fatalf("got %q", got)
	}
	if got := PadRight("MyString", 20, "few"); got != "MyStringfewfewfewfew" {
		t.Fatalf("got %q", got)
	}
}

func TestPadLeftSecondExample(t *testing.T) {
	if got := PadLeft("MyString", 20, "few"); got != "fewfewfewfewMyString" {
		t.Fatalf("got %q", got)
	}
}

func TestUuid5Deterministic(t *testing.T) {
	a, err := Uuid5("testing", "67eb2232-f06e-406a-b934-e17f5fa31ae4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Uuid5("testing", "67eb2232-f06e-406a-b934-e17f5fa31ae4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("expected deterministic uuid5, got %q and %q", a, b)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	s := "hello, RecordPath"
	enc := Base64EncodeString(s)
	dec, err := Base64DecodeString(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec != s {
		t.Fatalf("round trip failed: got %q", dec)
	}
}

func TestToBytesToStringRoundTrip(t *testing.T) {
	s := "round trip"
	b, err := ToBytes(s, "UTF-8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := ToStringFn(b, "UTF-8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != s {
		t.Fatalf("round trip failed: got %q", back)
	}
}

func TestMapOfOddArityErrors(t *testing.T) {
	_, err := MapOf([]record.Value{record.String("a")})
	if err == nil {
		t.Fatalf("expected an error for odd arity")
	}
}

func TestCoalesceAllNull(t *testing.T) {
	_, ok := Coalesce([]record.Value{record.Null, record.Null})
	if ok {
		t.Fatalf("expected coalesce of all-null to report false")
	}
}

func TestJoinFlattensArrays(t *testing.T) {
	args := []record.Value{
		record.String("a"),
		record.Array([]record.Value{record.String("b"), record.String("c")}),
	}
	got := Join(",", args)
	if got != "a,b,c" {
		t.Fatalf("got %q", got)
	}
}

func TestEscapeJSONRoundTripsUnescapeJSON(t *testing.T) {
	v := record.Map([]record.MapEntry{{Key: "a", Value: record.Double(1)}})
	s, err := EscapeJSON(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := UnescapeJSON(s, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := out.MapGet("a")
	if !ok {
		t.Fatalf("expected key 'a' in decoded map")
	}
	n, _ := got.Number()
	if n != 1 {
		t.Fatalf("expected 1, got %v", n)
	}
}

func TestUnescapeJSONConvertToRecord(t *testing.T) {
	out, err := UnescapeJSON(`{"a":1}`, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, ok := out.Rec()
	if !ok {
		t.Fatalf("expected a Record value")
	}
	v, ok := rec.ValueOf("a")
	if !ok {
		t.Fatalf("expected field 'a'")
	}
	n, _ := v.Number()
	if n != 1 {
		t.Fatalf("expected 1, got %v", n)
	}
}

func TestHashUnknownAlgorithm(t *testing.T) {
	_, err := Hash("x", "not-an-algo")
	if err == nil {
		t.Fatalf("expected an error for unknown algorithm")
	}
}

func TestMatchesRegexRequiresFullMatch(t *testing.T) {
	ok, err := MatchesRegex("hello", "ell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected partial match to fail matchesRegex")
	}
	ok, err = MatchesRegex("hello", "h.*o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected full match to succeed")
	}
}
