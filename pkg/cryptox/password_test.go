package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces phc format", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := HashPassword("secret")
		require.NoError(t, err)
		h2, err := HashPassword("secret")
		require.NoError(t, err)
		require.NotEqual(t, h1, h2)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)

	t.Run("accepts correct password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("hunter2hunter2", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		err := VerifyPassword("hunter3hunter3", hash)
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects malformed digest", func(t *testing.T) {
		err := VerifyPassword("whatever", "not-a-phc-string")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects non-argon2id digest", func(t *testing.T) {
		err := VerifyPassword("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
		require.Error(t, err)
	})
}
