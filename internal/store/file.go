package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// FileRepo keeps the mapping in memory and rewrites a JSON file in full
// after every successful Put. The in-memory map stays authoritative for
// the process lifetime even if a write fails.
type FileRepo struct {
	path  string
	mu    sync.RWMutex
	users map[int64]string
}

// OpenFile loads the mapping from path, or starts empty if the file
// does not exist yet.
func OpenFile(path string) (*FileRepo, error) {
	r := &FileRepo{path: path, users: make(map[int64]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// JSON object keys are strings; chat IDs are stored as decimal strings.
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode %s: bad chat id %q", path, k)
		}
		r.users[id] = v
	}
	return r, nil
}

// Get returns the username for chatID or ErrNotRegistered.
func (r *FileRepo) Get(_ context.Context, chatID int64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[chatID]
	if !ok {
		return "", ErrNotRegistered
	}
	return u, nil
}

// Put registers a new chat. Existing chats fail with ErrAlreadyRegistered.
// A failed file write is reported as an ErrPersist-wrapped error, but the
// in-memory entry is kept.
func (r *FileRepo) Put(_ context.Context, chatID int64, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[chatID]; ok {
		return ErrAlreadyRegistered
	}
	r.users[chatID] = username

	if err := r.save(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// All returns a snapshot copy of the mapping.
func (r *FileRepo) All(_ context.Context) (map[int64]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int64]string, len(r.users))
	for k, v := range r.users {
		out[k] = v
	}
	return out, nil
}

// Count returns the number of registered chats.
func (r *FileRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// Close is a no-op; the file is rewritten on every Put.
func (r *FileRepo) Close() error { return nil }

// save rewrites the whole file. Caller holds the write lock.
// Write-to-temp plus rename so a crash mid-write never truncates the file.
func (r *FileRepo) save() error {
	raw := make(map[string]string, len(r.users))
	for k, v := range r.users {
		raw[strconv.FormatInt(k, 10)] = v
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
