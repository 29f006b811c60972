package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/pkg/cryptox"
	"github.com/arcbound/accountd/pkg/slogx"
)

// AccountService owns the data invariants over accounts: email/username
// uniqueness and existence. It performs no authorization; callers must have
// already gated the actor through the IdentityService.
type AccountService struct {
	Store store.Store
}

// Register creates a new account. Email and username are checked against
// existing rows before the insert; the check-then-insert pair is not
// transactionally guarded, matching the storage contract where uniqueness
// lives in this layer rather than the schema.
func (s *AccountService) Register(
	ctx context.Context,
	email, username, password string,
) (domain.Account, error) {
	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		return domain.Account{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, err
	}

	if _, err := s.Store.Accounts().GetAccountByUsername(ctx, username); err == nil {
		return domain.Account{}, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.Store.Accounts().CreateAccount(ctx, domain.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return domain.Account{}, err
	}

	slogx.FromContext(ctx).Info("account registered",
		"account_id", account.ID,
		"username", account.Username,
	)
	return account, nil
}

// CreateSuperuser registers an account and grants it the superuser flag.
// Used by the bootstrap CLI to seed the first administrator.
func (s *AccountService) CreateSuperuser(
	ctx context.Context,
	email, username, password string,
) (domain.Account, error) {
	account, err := s.Register(ctx, email, username, password)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.Store.Accounts().SetAccountSuperuser(ctx, account.ID, true); err != nil {
		return domain.Account{}, err
	}
	account.IsSuperuser = true
	return account, nil
}

// GetByID fetches a single account.
func (s *AccountService) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

// List returns accounts in insertion order with skip/limit pagination.
func (s *AccountService) List(ctx context.Context, skip, limit int64) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx, skip, limit)
}

// Update merges only the supplied fields into the stored account. A supplied
// password is re-hashed before persisting. The read-merge-write runs in one
// transaction.
func (s *AccountService) Update(
	ctx context.Context,
	id int64,
	update domain.AccountUpdate,
) (domain.Account, error) {
	var updated domain.Account

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, id)
		if err != nil {
			return err
		}

		if update.Email != nil {
			account.Email = *update.Email
		}
		if update.Username != nil {
			account.Username = *update.Username
		}
		if update.Password != nil {
			hash, err := cryptox.HashPassword(*update.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			account.PasswordHash = hash
		}

		if err := tx.Accounts().UpdateAccount(ctx, account); err != nil {
			return err
		}

		updated = account
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, err
	}
	return updated, nil
}

// Delete hard-deletes an account; refresh tokens cascade in the schema.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Accounts().DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("account deleted", "account_id", id)
	return nil
}

// SetActive flips the is_active flag and returns the updated account.
func (s *AccountService) SetActive(
	ctx context.Context,
	id int64,
	active bool,
) (domain.Account, error) {
	var updated domain.Account

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().SetAccountActive(ctx, id, active); err != nil {
			return err
		}

		account, err := tx.Accounts().GetAccountByID(ctx, id)
		if err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, err
	}
	return updated, nil
}
