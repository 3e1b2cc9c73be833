package vars

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/unkn0wn-root/curlmonkey/internal/atomicfile"
	"github.com/unkn0wn-root/curlmonkey/internal/errdef"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

// Store owns environments.json: a flat object keyed by environment name.
// The Default environment is created (and persisted) the first time the
// store loads without one, so callers can always rely on it existing.
type Store struct {
	path string

	mu     sync.RWMutex
	envs   map[string]model.Environment
	loaded bool
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked()
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.envs = map[string]model.Environment{}
	case err != nil:
		return errdef.Wrap(errdef.CodeFilesystem, err, "read environments")
	default:
		decoded := map[string]model.Environment{}
		if err := json.Unmarshal(data, &decoded); err != nil {
			return errdef.Wrap(errdef.CodeParse, err, "parse environments")
		}
		s.envs = decoded
	}

	s.loaded = true
	if _, ok := s.envs[model.DefaultEnvironmentName]; !ok {
		s.envs[model.DefaultEnvironmentName] = model.Environment{
			Name:      model.DefaultEnvironmentName,
			Variables: map[string]string{},
		}
		return s.persistLocked()
	}
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.envs, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "encode environments")
	}
	if err := atomicfile.Write(s.path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write environments")
	}
	return nil
}

// Names returns environment names sorted with Default first.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.envs))
	for name := range s.envs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == model.DefaultEnvironmentName {
			return true
		}
		if names[j] == model.DefaultEnvironmentName {
			return false
		}
		return names[i] < names[j]
	})
	return names
}

func (s *Store) Get(name string) (model.Environment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	env, ok := s.envs[name]
	if !ok {
		return model.Environment{}, false
	}
	return cloneEnv(env), true
}

// VariablesFor resolves the variable map used to build a request, falling
// back to Default when the named environment does not exist.
func (s *Store) VariablesFor(name string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, ok := s.envs[name]
	if !ok {
		env = s.envs[model.DefaultEnvironmentName]
	}
	vars := make(map[string]string, len(env.Variables))
	for k, v := range env.Variables {
		vars[k] = v
	}
	return vars
}

func (s *Store) Put(env model.Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	if env.Variables == nil {
		env.Variables = map[string]string{}
	}
	s.envs[env.Name] = cloneEnv(env)
	return s.persistLocked()
}

func (s *Store) Delete(name string) error {
	if name == model.DefaultEnvironmentName {
		return errdef.New(errdef.CodeParse, "the Default environment cannot be deleted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	if _, ok := s.envs[name]; !ok {
		return nil
	}
	delete(s.envs, name)
	return s.persistLocked()
}

func cloneEnv(env model.Environment) model.Environment {
	vars := make(map[string]string, len(env.Variables))
	for k, v := range env.Variables {
		vars[k] = v
	}
	env.Variables = vars
	return env
}
