package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testAccount(username string) domain.Account {
	return domain.Account{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestAccountsRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns sequential ids", func(t *testing.T) {
		s := newTestStore(t)

		first, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)
		second, err := s.Accounts().CreateAccount(ctx, testAccount("bob"))
		require.NoError(t, err)

		require.Greater(t, first.ID, int64(0))
		require.Equal(t, first.ID+1, second.ID)
	})

	t.Run("get by id email and username", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)

		byID, err := s.Accounts().GetAccountByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", byID.Username)
		require.True(t, byID.IsActive)
		require.False(t, byID.IsSuperuser)

		byEmail, err := s.Accounts().GetAccountByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, created.ID, byEmail.ID)

		byUsername, err := s.Accounts().GetAccountByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, created.ID, byUsername.ID)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Accounts().GetAccountByID(ctx, 999)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Accounts().GetAccountByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Accounts().DeleteAccount(ctx, 999), store.ErrNotFound)
		require.ErrorIs(t, s.Accounts().SetAccountActive(ctx, 999, false), store.ErrNotFound)
	})

	t.Run("list paginates in insertion order", func(t *testing.T) {
		s := newTestStore(t)

		for _, name := range []string{"alice", "bob", "carol", "dave"} {
			_, err := s.Accounts().CreateAccount(ctx, testAccount(name))
			require.NoError(t, err)
		}

		page, err := s.Accounts().ListAccounts(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		require.Equal(t, "bob", page[0].Username)
		require.Equal(t, "carol", page[1].Username)

		empty, err := s.Accounts().ListAccounts(ctx, 10, 2)
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("update rewrites mutable columns only", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)

		created.Email = "new@example.com"
		created.Username = "alice2"
		require.NoError(t, s.Accounts().UpdateAccount(ctx, created))

		got, err := s.Accounts().GetAccountByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "new@example.com", got.Email)
		require.Equal(t, "alice2", got.Username)
	})

	t.Run("flag updates round trip", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)

		require.NoError(t, s.Accounts().SetAccountActive(ctx, created.ID, false))
		require.NoError(t, s.Accounts().SetAccountSuperuser(ctx, created.ID, true))

		got, err := s.Accounts().GetAccountByID(ctx, created.ID)
		require.NoError(t, err)
		require.False(t, got.IsActive)
		require.True(t, got.IsSuperuser)
	})
}

func TestRefreshTokensRepo(t *testing.T) {
	ctx := context.Background()

	newToken := func(accountID int64, hash string) domain.RefreshToken {
		now := time.Now().UTC().Truncate(time.Second)
		return domain.RefreshToken{
			ID:        idx.New().String(),
			AccountID: accountID,
			TokenHash: hash,
			ExpiresAt: now.Add(24 * time.Hour),
			CreatedAt: now,
		}
	}

	t.Run("create and fetch by hash", func(t *testing.T) {
		s := newTestStore(t)
		account, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)

		tok := newToken(account.ID, "fingerprint-1")
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, tok))

		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "fingerprint-1")
		require.NoError(t, err)
		require.Equal(t, tok.ID, got.ID)
		require.Equal(t, account.ID, got.AccountID)
		require.False(t, got.Revoked)

		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "no-such-hash")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("revoke flips once", func(t *testing.T) {
		s := newTestStore(t)
		account, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)

		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, newToken(account.ID, "fp")))

		revoked, err := s.RefreshTokens().RevokeRefreshToken(ctx, "fp")
		require.NoError(t, err)
		require.True(t, revoked)

		// Second revocation touches nothing.
		revoked, err = s.RefreshTokens().RevokeRefreshToken(ctx, "fp")
		require.NoError(t, err)
		require.False(t, revoked)

		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "fp")
		require.NoError(t, err)
		require.True(t, got.Revoked)
	})

	t.Run("revoking unknown hash reports false", func(t *testing.T) {
		s := newTestStore(t)

		revoked, err := s.RefreshTokens().RevokeRefreshToken(ctx, "ghost")
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("deleting account cascades tokens", func(t *testing.T) {
		s := newTestStore(t)
		account, err := s.Accounts().CreateAccount(ctx, testAccount("alice"))
		require.NoError(t, err)

		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, newToken(account.ID, "fp")))
		require.NoError(t, s.Accounts().DeleteAccount(ctx, account.ID))

		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "fp")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit persists writes", func(t *testing.T) {
		s := newTestStore(t)

		err := s.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Accounts().CreateAccount(ctx, testAccount("alice"))
			return err
		})
		require.NoError(t, err)

		_, err = s.Accounts().GetAccountByUsername(ctx, "alice")
		require.NoError(t, err)
	})

	t.Run("error rolls back", func(t *testing.T) {
		s := newTestStore(t)

		sentinel := store.ErrNotFound
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if _, err := tx.Accounts().CreateAccount(ctx, testAccount("alice")); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		_, err = s.Accounts().GetAccountByUsername(ctx, "alice")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
