package collections

import (
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "collections.json"))
}

func TestCreateRejectsDuplicates(t *testing.T) {
	store := newTestStore(t)
	if err := store.Create("API"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create("API"); err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
}

func TestAddRequestDerivesName(t *testing.T) {
	store := newTestStore(t)
	if err := store.Create("API"); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := model.NewRequest()
	req.Method = model.MethodPost
	req.URL = "https://x.test/users"
	if err := store.AddRequest("API", "", req); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := store.Collections()[0].Items
	if len(items) != 1 || items[0].Name != "POST https://x.test/users" {
		t.Fatalf("unexpected items %+v", items)
	}

	// snapshot, not a live reference
	req.URL = "https://changed.test"
	if store.Collections()[0].Items[0].Request.URL != "https://x.test/users" {
		t.Fatalf("stored request aliases the live model")
	}
}

func TestAddRequestUnknownCollection(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddRequest("missing", "name", model.NewRequest()); err == nil {
		t.Fatalf("expected error for unknown collection")
	}
}

func TestImportMergesByName(t *testing.T) {
	store := newTestStore(t)
	if err := store.Create("Existing"); err != nil {
		t.Fatalf("create: %v", err)
	}
	req := model.NewRequest()
	req.URL = "https://keep.test"
	if err := store.AddRequest("Existing", "keep", req); err != nil {
		t.Fatalf("add: %v", err)
	}

	other := NewStore(filepath.Join(t.TempDir(), "export.json"))
	if err := other.Create("Existing"); err != nil {
		t.Fatalf("create other: %v", err)
	}
	if err := other.Create("Imported"); err != nil {
		t.Fatalf("create other: %v", err)
	}
	exportPath := filepath.Join(t.TempDir(), "bundle.json")
	if err := other.ExportFile(exportPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	added, err := store.ImportFile(exportPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added collection, got %d", added)
	}

	colls := store.Collections()
	if len(colls) != 2 {
		t.Fatalf("unexpected collections %+v", colls)
	}
	// the existing collection keeps its requests
	if len(colls[0].Items) != 1 || colls[0].Items[0].Name != "keep" {
		t.Fatalf("existing collection was overwritten: %+v", colls[0])
	}
	if colls[1].Name != "Imported" {
		t.Fatalf("imported collection missing: %+v", colls[1])
	}
}

func TestDeleteRequestOutOfRangeIsNoop(t *testing.T) {
	store := newTestStore(t)
	if err := store.Create("API"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.DeleteRequest("API", 3); err != nil {
		t.Fatalf("delete out of range: %v", err)
	}
}

func TestPersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")
	store := NewStore(path)
	if err := store.Create("API"); err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reopened.Collections()) != 1 {
		t.Fatalf("collection not persisted")
	}
}
