package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/curlmonkey/internal/atomicfile"
	"github.com/unkn0wn-root/curlmonkey/internal/errdef"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

const DefaultMaxEntries = 1000

// Store owns history.json: a newest-first array of entries, capped at
// maxEntries with the oldest evicted. Entries are immutable once recorded.
type Store struct {
	path       string
	maxEntries int

	mu      sync.RWMutex
	entries []model.HistoryEntry
	loaded  bool
}

func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{path: path, maxEntries: maxEntries}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked()
}

// Record creates an entry for a sent request and appends it. The response
// may be nil (the request never completed); its status is then left unset.
func (s *Store) Record(req *model.Request, resp *model.Response) (model.HistoryEntry, error) {
	entry := model.HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Method:    req.Method,
		URL:       req.URL,
		Name:      model.DeriveHistoryName(req.Method, req.URL),
		Request:   req.Clone(),
	}
	if resp != nil && !resp.Failed() {
		code := resp.StatusCode
		entry.StatusCode = &code
	}
	return entry, s.Append(entry)
}

func (s *Store) Append(entry model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}

	s.entries = append([]model.HistoryEntry{entry}, s.entries...)
	s.sortLocked()
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	return s.persistLocked()
}

func (s *Store) Entries() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copies := make([]model.HistoryEntry, len(s.entries))
	copy(copies, s.entries)
	return copies
}

func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return false, err
	}

	idx := -1
	for i, entry := range s.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return true, s.persistLocked()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	s.entries = nil
	return s.persistLocked()
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.entries = nil
	case err != nil:
		return errdef.Wrap(errdef.CodeFilesystem, err, "read history")
	default:
		var decoded []model.HistoryEntry
		if err := json.Unmarshal(data, &decoded); err != nil {
			return errdef.Wrap(errdef.CodeHistory, err, "parse history")
		}
		s.entries = decoded
		s.sortLocked()
		if len(s.entries) > s.maxEntries {
			s.entries = s.entries[:s.maxEntries]
		}
	}

	s.loaded = true
	return nil
}

func (s *Store) sortLocked() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Timestamp.After(s.entries[j].Timestamp)
	})
}

func (s *Store) persistLocked() error {
	payload := s.entries
	if payload == nil {
		payload = []model.HistoryEntry{}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "encode history")
	}
	if err := atomicfile.Write(s.path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write history")
	}
	return nil
}
