package expr

import (
	"fmt"
	"testing"
)

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	tcs := []struct {
		in, out string
	}{
		{"foo bar", "'foo bar'"},
		{"", "''"},
		{"a\tb\nc\rd", `'a\tb\nc\rd'`},
		{"b '/\\ c", `'b \'/\\ c'`},
		{"żółw", "'żółw'"},
		{"'xyz'", `'\'xyz\''`},
	}

	for i := range tcs {
		tc := &tcs[i]
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			quoted := Quote(tc.in)
			if quoted != tc.out {
				t.Logf("got  = %s", quoted)
				t.Logf("want = %s", tc.out)
				t.Errorf("wrong quote")
			}

			unquoted, err := Unquote(quoted)
			if err != nil {
				t.Fatalf("unexpected error %s", err)
			}
			if unquoted != tc.in {
				t.Logf("got  = %s", unquoted)
				t.Logf("want = %s", tc.in)
				t.Errorf("wrong unquote")
			}
		})
	}
}

func TestQuoteDoubleRoundTrip(t *testing.T) {
	in := `she said "hi" \ bye`
	quoted := QuoteDouble(in)
	if quoted != `"she said \"hi\" \\ bye"` {
		t.Fatalf("got %s", quoted)
	}
	unquoted, err := Unquote(quoted)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if unquoted != in {
		t.Fatalf("got %q, want %q", unquoted, in)
	}
}

func TestQuoteBareNamesAreNotQuoted(t *testing.T) {
	for _, name := range []string{"id", "_id", "fieldName2", "A"} {
		if got := Quote(name); got != name {
			t.Errorf("Quote(%q) = %q, want unquoted", name, got)
		}
	}
	for _, name := range []string{"2nd", "has space", "", "a-b"} {
		if got := Quote(name); got == name {
			t.Errorf("Quote(%q) = %q, want it quoted", name, got)
		}
	}
}

func TestUnquoteValid(t *testing.T) {
	tcs := []struct {
		in  string
		out string
	}{
		{in: `'żółw'`, out: "żółw"},
		{in: `'a\tb\nc\rd'`, out: "a\tb\nc\rd"},
		{in: `"double \"quoted\""`, out: `double "quoted"`},
	}

	for i := range tcs {
		tc := &tcs[i]
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			unquoted, err := Unquote(tc.in)
			if err != nil {
				t.Fatalf("unexpected error %s", err)
			}
			if unquoted != tc.out {
				t.Logf("got  = %s", unquoted)
				t.Logf("want = %s", tc.out)
				t.Errorf("wrong result")
			}
		})
	}
}

func TestUnquoteErrors(t *testing.T) {
	tcs := []struct {
		in  string
		err string
	}{
		{
			in:  "test'",
			err: "expr.Unquote: string does not start with a quote",
		},
		{
			in:  "'test",
			err: "expr.Unquote: mismatched quote characters",
		},
		{
			in:  "a",
			err: `expr.Unquote: string "a" too short`,
		},
		{
			in:  "",
			err: `expr.Unquote: string "" too short`,
		},
		{
			in:  "'test\\'",
			err: `expr.Unescape: cannot unescape trailing \`,
		},
		{
			in:  "'test\\z'",
			err: `expr.Unescape: unexpected backslash escape of 'z'`,
		},
	}

	for i := range tcs {
		tc := &tcs[i]
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			_, err := Unquote(tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := err.Error(); got != tc.err {
				t.Logf("got  = %s", got)
				t.Logf("want = %s", tc.err)
				t.Errorf("wrong error message")
			}
		})
	}
}
