package service

import (
	"context"
	"errors"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/pkg/jwtx"
	"github.com/arcbound/accountd/pkg/slogx"
)

// IdentityService derives the calling account from a presented access token
// and enforces the active/superuser predicates. Every protected operation
// goes through here before touching the account or token services.
type IdentityService struct {
	Verifier jwtx.Verifier
	Store    store.Store
}

// CurrentAccount verifies the access token and resolves its subject to an
// account. Every failure mode (bad signature, malformed, expired, unknown
// subject) collapses into ErrUnauthenticated; callers learn nothing about
// which check failed.
func (s *IdentityService) CurrentAccount(
	ctx context.Context,
	accessToken string,
) (domain.Account, error) {
	claims, err := s.Verifier.Verify(accessToken)
	if err != nil {
		slogx.FromContext(ctx).Debug("access token rejected", "err", err)
		return domain.Account{}, ErrUnauthenticated
	}

	if err := claims.ValidateExpiry(); err != nil {
		return domain.Account{}, ErrUnauthenticated
	}

	account, err := s.Store.Accounts().GetAccountByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrUnauthenticated
		}
		return domain.Account{}, err
	}
	return account, nil
}

// CurrentActiveAccount additionally requires the account to be active.
func (s *IdentityService) CurrentActiveAccount(
	ctx context.Context,
	accessToken string,
) (domain.Account, error) {
	account, err := s.CurrentAccount(ctx, accessToken)
	if err != nil {
		return domain.Account{}, err
	}
	if !account.IsActive {
		return domain.Account{}, ErrForbidden
	}
	return account, nil
}

// CurrentSuperuser additionally requires the superuser flag.
func (s *IdentityService) CurrentSuperuser(
	ctx context.Context,
	accessToken string,
) (domain.Account, error) {
	account, err := s.CurrentActiveAccount(ctx, accessToken)
	if err != nil {
		return domain.Account{}, err
	}
	if !account.IsSuperuser {
		return domain.Account{}, ErrForbidden
	}
	return account, nil
}

// CanAccess is the self-or-superuser rule used by the per-account read and
// update endpoints.
func CanAccess(actor domain.Account, targetID int64) bool {
	return actor.ID == targetID || actor.IsSuperuser
}
