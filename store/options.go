// Package store persists user options as a JSON file and notifies listeners
// when they change. The matching engine only ever sees it through the
// BlacklistText accessor; nothing here knows about rules or matching.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type optionData struct {
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
	Blacklist string    `json:"blacklist"`
}

// FileStore is a JSON-file-backed option store.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	data     optionData
	onChange []func(blacklist string)
}

// Open loads the option file at path, starting from empty options when the
// file does not exist yet. A corrupt file is an error, not a silent reset.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

// BlacklistText returns the persisted blacklist text.
func (s *FileStore) BlacklistText() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Blacklist, nil
}

// SetBlacklist persists a new blacklist text and fires the change listeners.
// The file is replaced atomically via a temp file and rename, so a crash
// mid-save never leaves a half-written option file behind. Listeners run
// synchronously after the rename; a failed write leaves both the file and
// the in-memory options untouched.
func (s *FileStore) SetBlacklist(text string) error {
	s.mu.Lock()
	next := s.data
	next.Blacklist = text
	next.Revision++
	next.UpdatedAt = time.Now()

	raw, err := json.MarshalIndent(&next, "", "  ")
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := writeFileAtomic(s.path, raw); err != nil {
		s.mu.Unlock()
		return err
	}
	s.data = next
	listeners := append([]func(string){}, s.onChange...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(text)
	}
	return nil
}

// OnChange registers a listener called with the new blacklist text after
// every successful SetBlacklist.
func (s *FileStore) OnChange(fn func(blacklist string)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Revision returns the current option revision, starting at zero.
func (s *FileStore) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Revision
}

func writeFileAtomic(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
