package urlutil

import (
	"strings"
	"testing"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

func TestMergeQueryOverwritesExistingKey(t *testing.T) {
	got := MergeQuery("https://x.test/a?q=old&keep=1", []model.KeyValuePair{
		{Enabled: true, Key: "q", Value: "hello world"},
	}, nil)

	if strings.Count(got, "q=") != 1 {
		t.Fatalf("expected single q parameter: %q", got)
	}
	if !strings.Contains(got, "q=hello+world") {
		t.Fatalf("value not encoded: %q", got)
	}
	if !strings.Contains(got, "keep=1") {
		t.Fatalf("unrelated parameter dropped: %q", got)
	}
}

func TestMergeQuerySkipsDisabledAndEmptyKeys(t *testing.T) {
	got := MergeQuery("https://x.test/a", []model.KeyValuePair{
		{Enabled: false, Key: "off", Value: "1"},
		{Enabled: true, Key: "", Value: "1"},
	}, nil)
	if got != "https://x.test/a" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestMergeQueryAppliesTransformToValues(t *testing.T) {
	got := MergeQuery("https://x.test/a", []model.KeyValuePair{
		{Enabled: true, Key: "token", Value: "{{t}}"},
	}, func(s string) string { return strings.ReplaceAll(s, "{{t}}", "abc") })
	if !strings.Contains(got, "token=abc") {
		t.Fatalf("transform not applied: %q", got)
	}
}
