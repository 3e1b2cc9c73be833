package curl

import (
	"reflect"
	"testing"
)

func TestSplitTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`a b c`, []string{"a", "b", "c"}},
		{`-H 'Accept: */*'`, []string{"-H", "Accept: */*"}},
		{`-H "a \"b\" c"`, []string{"-H", `a "b" c`}},
		{`--data $'line1\nline2'`, []string{"--data", "line1\nline2"}},
		{`a\ b`, []string{"a b"}},
		{"a \\\nb", []string{"a", "b"}},
		{`'single "double" inside'`, []string{`single "double" inside`}},
		{`x=$'\x41'`, []string{"x=A"}},
	}
	for _, tc := range cases {
		got, err := splitTokens(tc.in)
		if err != nil {
			t.Fatalf("splitTokens(%q): %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitTokens(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestSplitTokensErrors(t *testing.T) {
	for _, in := range []string{`"unterminated`, `'unterminated`, `trailing\`} {
		if _, err := splitTokens(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestLenientSplitNeverFails(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`a "b c`, []string{"a", "b c"}},
		{`plain words`, []string{"plain", "words"}},
		{`'mixed "quotes`, []string{`mixed "quotes`}},
		{``, nil},
	}
	for _, tc := range cases {
		if got := lenientSplit(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("lenientSplit(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}
