package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/internal/store/drivers/sqlite"
	"github.com/arcbound/accountd/pkg/jwtx"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "accountd-test"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestServices(t *testing.T) (*AccountService, *TokenService, *IdentityService) {
	t.Helper()

	st := newTestStore(t)
	signer, err := jwtx.NewHS256([]byte(testSecret), testIssuer, 0)
	require.NoError(t, err)

	accounts := &AccountService{Store: st}
	tokens := &TokenService{
		Signer:     signer,
		Store:      st,
		Issuer:     testIssuer,
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 720 * time.Hour,
	}
	identity := &IdentityService{Verifier: signer, Store: st}
	return accounts, tokens, identity
}

func mustRegister(
	t *testing.T,
	accounts *AccountService,
	username string,
) domain.Account {
	t.Helper()

	account, err := accounts.Register(
		context.Background(), username+"@example.com", username, "password123")
	require.NoError(t, err)
	return account
}
