package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminStoreSeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := NewAdminStore(path, "admin", "apebrain2024")
	require.NoError(t, err)

	assert.Equal(t, "admin", s.Username())
	assert.True(t, s.Check("admin", "apebrain2024"))
	assert.False(t, s.Check("admin", "wrong"))
	assert.False(t, s.Check("root", "apebrain2024"))
	assert.FileExists(t, path)
}

func TestAdminStoreUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := NewAdminStore(path, "admin", "apebrain2024")
	require.NoError(t, err)

	require.NoError(t, s.Update("apebrain2024", "operator", "s3cret"))
	assert.True(t, s.Check("operator", "s3cret"))
	assert.False(t, s.Check("admin", "apebrain2024"))

	// a fresh store reads the updated file, not the defaults
	reloaded, err := NewAdminStore(path, "admin", "apebrain2024")
	require.NoError(t, err)
	assert.True(t, reloaded.Check("operator", "s3cret"))
}

func TestAdminStoreUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := NewAdminStore(path, "admin", "apebrain2024")
	require.NoError(t, err)

	require.NoError(t, s.Update("apebrain2024", "operator", ""))
	assert.True(t, s.Check("operator", "apebrain2024"))
}

func TestAdminStoreUpdateRequiresCurrentPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := NewAdminStore(path, "admin", "apebrain2024")
	require.NoError(t, err)

	err = s.Update("guess", "intruder", "pwned")
	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.True(t, s.Check("admin", "apebrain2024"))
}
