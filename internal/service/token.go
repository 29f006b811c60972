package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/pkg/cryptox"
	"github.com/arcbound/accountd/pkg/idx"
	"github.com/arcbound/accountd/pkg/jwtx"
	"github.com/arcbound/accountd/pkg/slogx"
)

// TokenService is the sole authority over the token lifecycle: it mints
// stateless HS256 access tokens and owns the refresh_tokens rows (mint,
// validate, revoke). Nothing else touches those rows.
type TokenService struct {
	Signer     jwtx.Signer
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login verifies credentials and issues a fresh access/refresh pair.
// Unknown username and wrong password fail identically so the response
// discloses nothing about which field was wrong. Correct credentials on an
// inactive account fail with ErrAccountInactive.
func (s *TokenService) Login(
	ctx context.Context,
	username, password string,
) (*domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash anyway so timing doesn't leak username existence.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		log.Info("login failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	accessToken, err := s.IssueAccessToken(account)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.IssueRefreshToken(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	log.Info("login succeeded", "account_id", account.ID)
	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// IssueAccessToken signs a stateless access token asserting the account's
// username until now+AccessTTL. Two calls at different instants are
// independent and each valid until its own expiry.
func (s *TokenService) IssueAccessToken(account domain.Account) (string, error) {
	claims := jwtx.NewAccessClaims(account.Username, s.Issuer, s.AccessTTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// IssueRefreshToken generates an opaque random token, persists its
// fingerprint bound to the account, and returns the plaintext. This is the
// only time the plaintext is ever exposed.
func (s *TokenService) IssueRefreshToken(ctx context.Context, accountID int64) (string, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	err = s.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.New().String(),
		AccountID: accountID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: now.Add(s.RefreshTTL),
		Revoked:   false,
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("persist refresh token: %w", err)
	}

	return opaque, nil
}

// VerifyRefreshToken resolves an opaque refresh token to its account.
// The token must exist, be unrevoked, and be unexpired; it is neither
// rotated nor deleted here, so it stays reusable until revoked or expired.
func (s *TokenService) VerifyRefreshToken(
	ctx context.Context,
	opaque string,
) (domain.Account, error) {
	fp := cryptox.FingerprintToken(opaque)

	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrInvalidRefresh
		}
		return domain.Account{}, err
	}

	if !rt.Active(time.Now().UTC()) {
		return domain.Account{}, ErrInvalidRefresh
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, rt.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrInvalidRefresh
		}
		return domain.Account{}, err
	}
	return account, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is returned untouched (no rotation on use).
func (s *TokenService) Refresh(ctx context.Context, opaque string) (*domain.TokenPair, error) {
	account, err := s.VerifyRefreshToken(ctx, opaque)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	accessToken, err := s.IssueAccessToken(account)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken: accessToken,
		ExpiresIn:   s.AccessTTL,
	}, nil
}

// RevokeRefreshToken marks a currently-active refresh token revoked.
// Revoking an absent or already-revoked token fails with ErrInvalidRefresh
// rather than succeeding silently.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, opaque string) error {
	fp := cryptox.FingerprintToken(opaque)

	revoked, err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, fp)
	if err != nil {
		return err
	}
	if !revoked {
		return ErrInvalidRefresh
	}

	slogx.FromContext(ctx).Info("refresh token revoked")
	return nil
}

// dummyHash is a throwaway Argon2id digest verified on unknown-username
// logins to keep the timing profile close to the wrong-password path.
var dummyHash = func() string {
	h, err := cryptox.HashPassword("accountd-timing-pad")
	if err != nil {
		panic(err)
	}
	return h
}()
