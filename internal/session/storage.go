package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Fixed keys for the two durable entries. They are always written
// together and cleared together.
const (
	tokenKey = "usertoken"
	userKey  = "user"
)

// Storage is the durable key/value backing of the session store. Only
// the Store touches it; every other component asks the Store.
type Storage interface {
	Get(key string) (string, bool, error)
	SetAll(entries map[string]string) error
	Clear(keys ...string) error
}

// FileStorage persists entries as a JSON object in a single file,
// created lazily on the first write.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStoragePath places the session file under the user config
// directory, falling back to the working directory when none exists.
func DefaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".portal_session.json"
	}
	return filepath.Join(dir, "jobportal", "session.json")
}

func (s *FileStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (s *FileStorage) SetAll(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range entries {
		current[k] = v
	}
	return s.save(current)
}

func (s *FileStorage) Clear(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(current, k)
	}
	return s.save(current)
}

func (s *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt session file behaves like an empty one.
		return map[string]string{}, nil
	}
	return entries, nil
}

func (s *FileStorage) save(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
