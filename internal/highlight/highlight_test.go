package highlight

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestLexerForContentType(t *testing.T) {
	cases := []struct {
		contentType string
		body        string
		want        string
	}{
		{"application/json", "{}", "json"},
		{"application/vnd.api+json; charset=utf-8", "{}", "json"},
		{"text/xml", "<a/>", "xml"},
		{"text/html; charset=utf-8", "<p>", "html"},
		{"text/plain", `{"sniffed":true}`, "json"},
		{"text/plain", "{not json", ""},
		{"application/octet-stream", "binary", ""},
	}
	for _, tc := range cases {
		if got := lexerForContentType(tc.contentType, tc.body); got != tc.want {
			t.Fatalf("lexerForContentType(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}

func TestFormatterForProfile(t *testing.T) {
	if got := formatterForProfile(termenv.Ascii); got != "" {
		t.Fatalf("ascii terminal must not highlight, got %q", got)
	}
	if got := formatterForProfile(termenv.TrueColor); got != "terminal16m" {
		t.Fatalf("unexpected formatter %q", got)
	}
}

func TestPrettyJSON(t *testing.T) {
	pretty, ok := PrettyJSON(`{"b":1,"a":[1,2]}`)
	if !ok {
		t.Fatalf("expected valid JSON")
	}
	want := "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if pretty != want {
		t.Fatalf("unexpected output:\n%s", pretty)
	}

	same, ok := PrettyJSON("not json")
	if ok || same != "not json" {
		t.Fatalf("invalid input must come back unchanged: %q %v", same, ok)
	}
}

func TestPrettyJSONPreservesLargeNumbers(t *testing.T) {
	pretty, ok := PrettyJSON(`{"id":9007199254740993}`)
	if !ok {
		t.Fatalf("expected valid JSON")
	}
	if pretty != "{\n  \"id\": 9007199254740993\n}" {
		t.Fatalf("number mangled: %s", pretty)
	}
}
