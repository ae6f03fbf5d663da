package tokenstore

import "errors"

// ErrNotFound signals that no token is persisted; callers treat it as
// "logged out", never as a failure.
var ErrNotFound = errors.New("tokenstore: no token stored")

// Store persists the single bearer credential of the device.
type Store interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// MemoryStore is an in-process Store used by tests and by ephemeral sessions.
type MemoryStore struct {
	token string
	set   bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(token string) error {
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryStore) Load() (string, error) {
	if !m.set {
		return "", ErrNotFound
	}
	return m.token, nil
}

func (m *MemoryStore) Clear() error {
	m.token = ""
	m.set = false
	return nil
}
