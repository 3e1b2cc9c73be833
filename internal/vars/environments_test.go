package vars

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "environments.json"))
}

func TestLoadBootstrapsDefault(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	env, ok := store.Get(model.DefaultEnvironmentName)
	if !ok {
		t.Fatalf("Default environment missing after load")
	}
	if env.Variables == nil {
		t.Fatalf("Default environment has nil variables")
	}

	// bootstrap must be persisted, not just in memory
	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read persisted file: %v", err)
	}
	var doc map[string]model.Environment
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse persisted file: %v", err)
	}
	if _, ok := doc[model.DefaultEnvironmentName]; !ok {
		t.Fatalf("Default not persisted: %s", data)
	}
}

func TestVariablesForFallsBackToDefault(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.Put(model.Environment{
		Name:      model.DefaultEnvironmentName,
		Variables: map[string]string{"base": "https://x.test"},
	}); err != nil {
		t.Fatalf("put: %v", err)
	}

	vars := store.VariablesFor("no-such-env")
	if vars["base"] != "https://x.test" {
		t.Fatalf("expected fallback to Default, got %v", vars)
	}
}

func TestDeleteDefaultRejected(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.Delete(model.DefaultEnvironmentName); err == nil {
		t.Fatalf("expected delete of Default to fail")
	}
}

func TestNamesDefaultFirst(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []string{"staging", "Alpha", "prod"} {
		if err := store.Put(model.Environment{Name: name}); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}
	names := store.Names()
	if names[0] != model.DefaultEnvironmentName {
		t.Fatalf("expected Default first, got %v", names)
	}
	rest := names[1:]
	for i := 1; i < len(rest); i++ {
		if rest[i-1] > rest[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestParseDotEnv(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"export HOST=https://x.test",
		"TOKEN='secret value'",
		`GREETING="hello world"`,
		"BROKENLINE",
		"HOST=https://y.test",
	}, "\n")

	values, err := parseDotEnv(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{
		"HOST":     "https://y.test",
		"TOKEN":    "secret value",
		"GREETING": "hello world",
	}
	if len(values) != len(want) {
		t.Fatalf("unexpected values %v", values)
	}
	for k, v := range want {
		if values[k] != v {
			t.Fatalf("key %s = %q, want %q", k, values[k], v)
		}
	}
}
