package httpclient

import (
	"strings"
	"testing"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

func TestBuildURLSubstitutesAndMergesQuery(t *testing.T) {
	req := model.NewRequest()
	req.URL = "https://{{host}}/a?q=old"
	req.QueryParams = []model.KeyValuePair{
		{Enabled: true, Key: "q", Value: "hello world"},
		{Enabled: false, Key: "off", Value: "1"},
	}

	wire := Build(req, map[string]string{"host": "x.test"})
	if strings.Count(wire.URL, "q=") != 1 {
		t.Fatalf("duplicate q parameter: %q", wire.URL)
	}
	if !strings.Contains(wire.URL, "q=hello+world") {
		t.Fatalf("new value not encoded: %q", wire.URL)
	}
	if !strings.HasPrefix(wire.URL, "https://x.test/a") {
		t.Fatalf("host not substituted: %q", wire.URL)
	}
	if strings.Contains(wire.URL, "off=") {
		t.Fatalf("disabled param merged: %q", wire.URL)
	}
}

func TestBuildURLStripsOneLayerOfQuotes(t *testing.T) {
	req := model.NewRequest()
	req.URL = `"https://x.test/a"`
	wire := Build(req, nil)
	if wire.URL != "https://x.test/a" {
		t.Fatalf("quotes not stripped: %q", wire.URL)
	}

	req.URL = `'https://x.test/b'`
	if wire := Build(req, nil); wire.URL != "https://x.test/b" {
		t.Fatalf("single quotes not stripped: %q", wire.URL)
	}

	// mismatched quotes stay put
	req.URL = `"https://x.test/c'`
	if wire := Build(req, nil); wire.URL != `"https://x.test/c'` {
		t.Fatalf("mismatched quotes must not be stripped: %q", wire.URL)
	}
}

func TestBuildHeadersWithBearer(t *testing.T) {
	req := model.NewRequest()
	req.URL = "https://x.test"
	req.Headers = []model.KeyValuePair{
		{Enabled: true, Key: "X-{{k}}", Value: "{{v}}"},
		{Enabled: false, Key: "X-Off", Value: "1"},
		{Enabled: true, Key: "", Value: "dropped"},
	}
	req.Auth = model.AuthConfig{Type: model.AuthBearer, BearerToken: "{{token}}"}

	wire := Build(req, map[string]string{"k": "Trace", "v": "on", "token": "t0k"})
	if wire.Headers["X-Trace"] != "on" {
		t.Fatalf("substitution missed header key/value: %+v", wire.Headers)
	}
	if wire.Headers["Authorization"] != "Bearer t0k" {
		t.Fatalf("bearer not applied: %+v", wire.Headers)
	}
	if len(wire.Headers) != 2 {
		t.Fatalf("disabled or empty-key headers leaked: %+v", wire.Headers)
	}
}

func TestBearerOverwritesExplicitAuthorization(t *testing.T) {
	req := model.NewRequest()
	req.Headers = []model.KeyValuePair{{Enabled: true, Key: "Authorization", Value: "Basic abc"}}
	req.Auth = model.AuthConfig{Type: model.AuthBearer, BearerToken: "tok"}

	wire := Build(req, nil)
	if wire.Headers["Authorization"] != "Bearer tok" {
		t.Fatalf("bearer must overwrite the literal header: %+v", wire.Headers)
	}
}

func TestBuildBodyRawJSON(t *testing.T) {
	req := model.NewRequest()
	req.BodyType = model.BodyRaw
	req.RawBodyType = model.RawJSON
	req.RawBody = `{"name":"{{who}}"}`

	wire := Build(req, map[string]string{"who": "Sam"})
	if wire.Body.JSON == nil {
		t.Fatalf("valid JSON not parsed")
	}
	obj, ok := wire.Body.JSON.(map[string]interface{})
	if !ok || obj["name"] != "Sam" {
		t.Fatalf("unexpected JSON value %v", wire.Body.JSON)
	}
}

func TestBuildBodyInvalidJSONDegradesToText(t *testing.T) {
	req := model.NewRequest()
	req.BodyType = model.BodyRaw
	req.RawBodyType = model.RawJSON
	req.RawBody = `{"broken":`

	wire := Build(req, nil)
	if wire.Body.JSON != nil {
		t.Fatalf("invalid JSON must not parse")
	}
	if wire.Body.Raw != `{"broken":` {
		t.Fatalf("text fallback lost: %q", wire.Body.Raw)
	}
}

func TestBuildBodyFormAndMultipart(t *testing.T) {
	req := model.NewRequest()
	req.BodyType = model.BodyForm
	req.FormData = []model.KeyValuePair{
		{Enabled: true, Key: "a", Value: "{{v}}"},
		{Enabled: false, Key: "off", Value: "1"},
	}
	wire := Build(req, map[string]string{"v": "1"})
	if len(wire.Body.Form) != 1 || wire.Body.Form["a"] != "1" {
		t.Fatalf("unexpected form %+v", wire.Body.Form)
	}

	req.BodyType = model.BodyMultipart
	req.MultipartData = []model.MultipartItem{
		{Enabled: true, Key: "note", Kind: model.MultipartText, Value: "hi"},
		{Enabled: true, Key: "file", Kind: model.MultipartFile, Value: "{{dir}}/a.bin"},
	}
	wire = Build(req, map[string]string{"dir": "/tmp"})
	if wire.Body.MultipartText["note"] != "hi" {
		t.Fatalf("unexpected multipart text %+v", wire.Body.MultipartText)
	}
	if wire.Body.MultipartFiles["file"] != "/tmp/a.bin" {
		t.Fatalf("path not substituted %+v", wire.Body.MultipartFiles)
	}
}

func TestBuildBasicAuthSubstituted(t *testing.T) {
	req := model.NewRequest()
	req.Auth = model.AuthConfig{Type: model.AuthBasic, Username: "{{u}}", Password: "{{p}}"}
	wire := Build(req, map[string]string{"u": "alice", "p": "pw"})
	if wire.BasicAuth == nil || wire.BasicAuth.Username != "alice" || wire.BasicAuth.Password != "pw" {
		t.Fatalf("unexpected basic auth %+v", wire.BasicAuth)
	}

	req.Auth = model.AuthConfig{Type: model.AuthBasic}
	if wire := Build(req, nil); wire.BasicAuth != nil {
		t.Fatalf("empty credentials must not produce basic auth")
	}
}

func TestInactiveBodyRepresentationsIgnored(t *testing.T) {
	req := model.NewRequest()
	req.BodyType = model.BodyNone
	req.RawBody = "leftover raw"
	req.FormData = []model.KeyValuePair{{Enabled: true, Key: "a", Value: "1"}}

	wire := Build(req, nil)
	if wire.Body.Raw != "" || wire.Body.Form != nil {
		t.Fatalf("inactive representations leaked into payload: %+v", wire.Body)
	}
}
