package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

func TestEmptySession(t *testing.T) {
	s := New()
	assert.False(t, s.SignedIn())
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, "", s.Role())
	assert.False(t, s.CanManage())
}

func TestCanManageByRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleOwner, true},
		{models.RolePBXAdmin, true},
		{models.RolePBXUser, false},
		{models.RoleReporter, false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			s := New()
			s.SetUser(&models.User{ID: 1, Role: tt.role})
			assert.Equal(t, tt.want, s.CanManage())
		})
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.SetToken("tok")
	s.SetUser(&models.User{ID: 1, Role: models.RoleOwner})
	s.SetProfile("prod")

	assert.True(t, s.SignedIn())
	s.Clear()

	assert.False(t, s.SignedIn())
	assert.Nil(t, s.CurrentUser())
	assert.False(t, s.CanManage())
	// profile 指向的环境不随登出丢失
	assert.Equal(t, "prod", s.Profile())
}
