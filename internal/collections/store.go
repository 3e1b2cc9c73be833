package collections

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/unkn0wn-root/curlmonkey/internal/atomicfile"
	"github.com/unkn0wn-root/curlmonkey/internal/errdef"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

// Store owns collections.json: an ordered array of named collections, each
// holding saved requests. Name uniqueness among collections is enforced by
// merge-on-import rather than a hard constraint.
type Store struct {
	path string

	mu          sync.RWMutex
	collections []model.Collection
	loaded      bool
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked()
}

func (s *Store) Collections() []model.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

func (s *Store) Create(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	for _, c := range s.collections {
		if c.Name == name {
			return errdef.New(errdef.CodeCollection, "collection %q already exists", name)
		}
	}
	s.collections = append(s.collections, model.Collection{Name: name})
	return s.persistLocked()
}

func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	for i, c := range s.collections {
		if c.Name == name {
			s.collections = append(s.collections[:i], s.collections[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

// AddRequest saves a snapshot of the request under the named collection. An
// empty request name gets a derived "METHOD url" label.
func (s *Store) AddRequest(collectionName, requestName string, req *model.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	if requestName == "" {
		url := req.URL
		if len(url) > 30 {
			url = url[:30]
		}
		requestName = string(req.Method) + " " + url
	}

	for i := range s.collections {
		if s.collections[i].Name != collectionName {
			continue
		}
		s.collections[i].Items = append(s.collections[i].Items, model.CollectionItem{
			Name:    requestName,
			Request: req.Clone(),
		})
		return s.persistLocked()
	}
	return errdef.New(errdef.CodeCollection, "collection %q not found", collectionName)
}

func (s *Store) DeleteRequest(collectionName string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	for i := range s.collections {
		if s.collections[i].Name != collectionName {
			continue
		}
		items := s.collections[i].Items
		if index < 0 || index >= len(items) {
			return nil
		}
		s.collections[i].Items = append(items[:index], items[index+1:]...)
		return s.persistLocked()
	}
	return nil
}

// ExportFile writes all collections to an external JSON file using the same
// array schema as collections.json.
func (s *Store) ExportFile(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload := s.collections
	if payload == nil {
		payload = []model.Collection{}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeCollection, err, "encode collections")
	}
	if err := atomicfile.Write(path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "export collections to %s", path)
	}
	return nil
}

// ImportFile merges collections from an external JSON file. Imported
// collections whose name already exists are dropped; existing data wins.
// Returns how many collections were added.
func (s *Store) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errdef.Wrap(errdef.CodeFilesystem, err, "read collections from %s", path)
	}
	var imported []model.Collection
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, errdef.Wrap(errdef.CodeCollection, err, "parse collections from %s", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return 0, err
	}

	existing := make(map[string]struct{}, len(s.collections))
	for _, c := range s.collections {
		existing[c.Name] = struct{}{}
	}

	added := 0
	for _, c := range imported {
		if _, ok := existing[c.Name]; ok {
			continue
		}
		existing[c.Name] = struct{}{}
		s.collections = append(s.collections, c)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.persistLocked()
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.collections = nil
	case err != nil:
		return errdef.Wrap(errdef.CodeFilesystem, err, "read collections")
	default:
		var decoded []model.Collection
		if err := json.Unmarshal(data, &decoded); err != nil {
			return errdef.Wrap(errdef.CodeCollection, err, "parse collections")
		}
		s.collections = decoded
	}

	s.loaded = true
	return nil
}

func (s *Store) persistLocked() error {
	payload := s.collections
	if payload == nil {
		payload = []model.Collection{}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeCollection, err, "encode collections")
	}
	if err := atomicfile.Write(s.path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write collections")
	}
	return nil
}
