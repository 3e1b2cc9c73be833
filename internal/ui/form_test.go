package ui

import (
	"testing"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

func TestParseKVLines(t *testing.T) {
	pairs := parseKVLines("Accept: application/json\n#X-Debug: 1\n\nHost: example.com", ": ")
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	if !pairs[0].Enabled || pairs[0].Key != "Accept" || pairs[0].Value != "application/json" {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Enabled || pairs[1].Key != "X-Debug" {
		t.Fatalf("commented line must come back disabled: %+v", pairs[1])
	}
	if pairs[2].Key != "Host" || pairs[2].Value != "example.com" {
		t.Fatalf("unexpected third pair: %+v", pairs[2])
	}
}

func TestParseKVLinesValueless(t *testing.T) {
	pairs := parseKVLines("flag", "=")
	if len(pairs) != 1 || pairs[0].Key != "flag" || pairs[0].Value != "" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestFormatKVLinesRoundTrip(t *testing.T) {
	in := []model.KeyValuePair{
		{Enabled: true, Key: "page", Value: "2"},
		{Enabled: false, Key: "debug", Value: "1"},
	}
	text := formatKVLines(in, "=")
	if text != "page=2\n#debug=1" {
		t.Fatalf("unexpected text: %q", text)
	}
	out := parseKVLines(text, "=")
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestParseMultipartLines(t *testing.T) {
	items := parseMultipartLines("field=value\nupload=@/tmp/report.pdf\n#off=x")
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Kind != model.MultipartText || items[0].Value != "value" {
		t.Fatalf("unexpected text item: %+v", items[0])
	}
	if items[1].Kind != model.MultipartFile || items[1].Value != "/tmp/report.pdf" {
		t.Fatalf("@ prefix must mark a file item: %+v", items[1])
	}
	if items[2].Enabled {
		t.Fatalf("commented item must be disabled")
	}
}

func TestFormatMultipartLines(t *testing.T) {
	text := formatMultipartLines([]model.MultipartItem{
		{Enabled: true, Key: "field", Kind: model.MultipartText, Value: "v"},
		{Enabled: true, Key: "file", Kind: model.MultipartFile, Value: "/tmp/a.txt"},
	})
	if text != "field=v\nfile=@/tmp/a.txt" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestParseEnvLines(t *testing.T) {
	values := parseEnvLines("host=api.example.com\n# comment\ntoken=abc\nhost=final")
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values["host"] != "final" {
		t.Fatalf("last assignment must win, got %q", values["host"])
	}
	if values["token"] != "abc" {
		t.Fatalf("unexpected token: %q", values["token"])
	}
}

func TestFormatEnvLinesSorted(t *testing.T) {
	text := formatEnvLines(map[string]string{"b": "2", "a": "1"})
	if text != "a=1\nb=2" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestResponseStatusLine(t *testing.T) {
	resp := &model.Response{
		StatusCode: 200,
		Reason:     "OK",
		ElapsedMs:  12.4,
		BodyBytes:  []byte("ok"),
	}
	if got := responseStatusLine(resp); got != "200 OK · 12 ms · 2 B" {
		t.Fatalf("unexpected status line: %q", got)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{532, "532 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.n); got != tc.want {
			t.Fatalf("formatSize(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
