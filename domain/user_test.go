package domain

import (
	"testing"

	"myCatalogStore/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	u := User{Username: "alice", PasswordHash: string(hash)}

	assert.True(t, u.VerifyPassword("correct horse"))
	assert.False(t, u.VerifyPassword("battery staple"))
	assert.False(t, User{}.VerifyPassword(""))
}

func TestUserRepresentation_OmitsPassword(t *testing.T) {
	rep := UserRepresentation(User{ID: 1, Username: "alice", Email: "a@example.com", PasswordHash: "hash"})

	assert.NotContains(t, rep, "password")
	assert.NotContains(t, rep, "password_hash")
	assert.Equal(t, "alice", rep["username"])
}
