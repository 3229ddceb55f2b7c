package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

var ErrBadCredentials = errors.New("invalid credentials")

// AdminCredentials is the mutable operator login, persisted outside the user
// collection so the shop works with zero registered users.
type AdminCredentials struct {
	Username string `json:"admin_username"`
	Password string `json:"admin_password"`
}

// AdminStore keeps operator credentials in a small JSON file. Updates are
// written to a temp file and renamed over the original so a crash mid-write
// cannot leave a torn file behind. The in-memory copy is the reload contract:
// every read after a successful Update sees the new values.
type AdminStore struct {
	mu    sync.RWMutex
	path  string
	creds AdminCredentials
}

// NewAdminStore loads credentials from path, falling back to the provided
// defaults (and seeding the file) when it does not exist yet.
func NewAdminStore(path, defaultUser, defaultPass string) (*AdminStore, error) {
	s := &AdminStore{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.creds); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		s.creds = AdminCredentials{Username: defaultUser, Password: defaultPass}
		if err := s.writeLocked(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s, nil
}

func (s *AdminStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// Check verifies an operator login attempt.
func (s *AdminStore) Check(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return username == s.creds.Username && password == s.creds.Password
}

// Update replaces the stored credentials after verifying the current
// password. An empty newPassword keeps the existing one.
func (s *AdminStore) Update(currentPassword, username, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if currentPassword != s.creds.Password {
		return ErrBadCredentials
	}

	next := AdminCredentials{Username: username, Password: s.creds.Password}
	if newPassword != "" {
		next.Password = newPassword
	}

	prev := s.creds
	s.creds = next
	if err := s.writeLocked(); err != nil {
		s.creds = prev
		return err
	}
	return nil
}

// writeLocked persists the current credentials. Callers hold s.mu.
func (s *AdminStore) writeLocked() error {
	raw, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".admin-creds-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
