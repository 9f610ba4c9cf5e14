package admin_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMatchPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	a := &Admin{Email: "admin@example.com", PasswordHash: string(hash)}
	assert.True(t, a.MatchPassword("s3cret-password"))
	assert.False(t, a.MatchPassword("wrong-password"))
	assert.False(t, a.MatchPassword(""))
}
