package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPasswordHistory(t *testing.T) {
	t.Run("appends to short history", func(t *testing.T) {
		got := AppendPasswordHistory([]string{"h1", "h2"}, "h3")
		assert.Equal(t, []string{"h1", "h2", "h3"}, got)
	})

	t.Run("evicts oldest beyond the limit", func(t *testing.T) {
		history := []string{"h1", "h2", "h3", "h4", "h5"}
		got := AppendPasswordHistory(history, "h6")
		assert.Equal(t, []string{"h2", "h3", "h4", "h5", "h6"}, got)
		assert.Len(t, got, PasswordHistoryLimit)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		history := []string{"h1", "h2", "h3", "h4", "h5"}
		_ = AppendPasswordHistory(history, "h6")
		assert.Equal(t, []string{"h1", "h2", "h3", "h4", "h5"}, history)
	})

	t.Run("works on nil history", func(t *testing.T) {
		got := AppendPasswordHistory(nil, "h1")
		assert.Equal(t, []string{"h1"}, got)
	})
}

func TestIdentityOf(t *testing.T) {
	u := &User{
		ID:                42,
		Surname:           "Doe",
		Name:              "Jane",
		Role:              RoleAdmin,
		Email:             "jane@example.com",
		ImagePath:         "/img/jane.png",
		PasswordHash:      "hash",
		PreviousPasswords: []string{"hash"},
	}

	identity := IdentityOf(u)
	require.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "Doe", identity.Surname)
	assert.Equal(t, "Jane", identity.Name)
	assert.Equal(t, RoleAdmin, identity.Role)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, "/img/jane.png", identity.ImagePath)
	assert.Empty(t, identity.CSRFNonce)
}
