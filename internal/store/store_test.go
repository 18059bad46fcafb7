package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pbxadmin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Profile{Name: "staging", BaseURL: "https://staging.example.com/api/v1"}))

	p, err := s.Get("staging")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/api/v1", p.BaseURL)
	assert.False(t, p.Active)
}

func TestSaveOverwritesByName(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Profile{Name: "prod", BaseURL: "https://old.example.com"}))
	require.NoError(t, s.Save(&Profile{Name: "prod", BaseURL: "https://new.example.com"}))

	p, err := s.Get("prod")
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", p.BaseURL)

	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSetActiveIsExclusive(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Profile{Name: "a", BaseURL: "https://a.example.com"}))
	require.NoError(t, s.Save(&Profile{Name: "b", BaseURL: "https://b.example.com"}))

	require.NoError(t, s.SetActive("a"))
	require.NoError(t, s.SetActive("b"))

	active, err := s.Active()
	require.NoError(t, err)
	assert.Equal(t, "b", active.Name)

	a, err := s.Get("a")
	require.NoError(t, err)
	assert.False(t, a.Active)
}

func TestSetActiveUnknownProfile(t *testing.T) {
	s := newTestStore(t)
	err := s.SetActive("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetToken(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Profile{Name: "prod", BaseURL: "https://prod.example.com"}))
	require.NoError(t, s.SetToken("prod", "jwt-abc"))

	p, err := s.Get("prod")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", p.Token)

	assert.ErrorIs(t, s.SetToken("missing", "x"), gorm.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Profile{Name: "tmp", BaseURL: "https://tmp.example.com"}))
	require.NoError(t, s.Delete("tmp"))

	_, err := s.Get("tmp")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestActiveWithoutProfiles(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Active()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
