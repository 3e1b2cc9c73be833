package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

func newTestStore(t *testing.T, max int) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"), max)
}

func TestRecordNewestFirst(t *testing.T) {
	store := newTestStore(t, 10)

	for i := 0; i < 3; i++ {
		req := model.NewRequest()
		req.URL = fmt.Sprintf("https://x.test/%d", i)
		resp := &model.Response{StatusCode: 200}
		if _, err := store.Record(req, resp); err != nil {
			t.Fatalf("record: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	entries := store.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].URL, "/2") {
		t.Fatalf("newest entry not first: %+v", entries[0])
	}
	if entries[0].StatusCode == nil || *entries[0].StatusCode != 200 {
		t.Fatalf("status code not recorded: %+v", entries[0])
	}
	if entries[0].Request == nil {
		t.Fatalf("request snapshot not recorded")
	}
}

func TestRecordFailedResponseHasNoStatus(t *testing.T) {
	store := newTestStore(t, 10)
	req := model.NewRequest()
	req.URL = "https://x.test"
	if _, err := store.Record(req, &model.Response{Error: "connection refused"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	entries := store.Entries()
	if entries[0].StatusCode != nil {
		t.Fatalf("failed request must not carry a status code: %+v", entries[0])
	}
}

func TestCapEvictsOldest(t *testing.T) {
	store := newTestStore(t, 5)
	base := time.Now()
	for i := 0; i < 8; i++ {
		entry := model.HistoryEntry{
			ID:        fmt.Sprintf("id-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Method:    model.MethodGet,
			URL:       fmt.Sprintf("https://x.test/%d", i),
			Name:      fmt.Sprintf("GET x.test/%d", i),
		}
		if err := store.Append(entry); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries := store.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(entries))
	}
	if entries[0].ID != "id-7" || entries[4].ID != "id-3" {
		t.Fatalf("wrong entries kept: first %s last %s", entries[0].ID, entries[4].ID)
	}
}

func TestDeleteAndClear(t *testing.T) {
	store := newTestStore(t, 10)
	entry := model.HistoryEntry{ID: "victim", Timestamp: time.Now(), Method: model.MethodGet, URL: "https://x.test"}
	if err := store.Append(entry); err != nil {
		t.Fatalf("append: %v", err)
	}

	ok, err := store.Delete("victim")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = store.Delete("victim")
	if err != nil || ok {
		t.Fatalf("second delete should be a no-op: ok=%v err=%v", ok, err)
	}

	if err := store.Append(entry); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.Entries()) != 0 {
		t.Fatalf("entries remain after clear")
	}
}

func TestPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")

	store := NewStore(path, 10)
	if err := store.Append(model.HistoryEntry{
		ID: "a", Timestamp: time.Now(), Method: model.MethodGet, URL: "https://x.test",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened := NewStore(path, 10)
	if err := reopened.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reopened.Entries()) != 1 {
		t.Fatalf("entry not persisted")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		t.Fatalf("history.json must be a JSON array: %s", data)
	}
}
