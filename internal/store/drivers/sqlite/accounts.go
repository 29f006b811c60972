package sqlite

import (
	"context"

	"github.com/arcbound/accountd/internal/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, username, password_hash, is_active, is_superuser, created_at`

func (r *accountsRepo) CreateAccount(
	ctx context.Context,
	a domain.Account,
) (domain.Account, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (email, username, password_hash, is_active, is_superuser, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Email, a.Username, a.PasswordHash, a.IsActive, a.IsSuperuser, a.CreatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Account{}, err
	}

	a.ID = id
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(
	ctx context.Context,
	email string,
) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByUsername(
	ctx context.Context,
	username string,
) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *accountsRepo) ListAccounts(
	ctx context.Context,
	offset, limit int64,
) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.Username, &a.PasswordHash,
			&a.IsActive, &a.IsSuperuser, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountsRepo) UpdateAccount(ctx context.Context, a domain.Account) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET email = ?, username = ?, password_hash = ?
		WHERE id = ?`,
		a.Email, a.Username, a.PasswordHash, a.ID,
	)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *accountsRepo) SetAccountActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *accountsRepo) SetAccountSuperuser(ctx context.Context, id int64, superuser bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_superuser = ? WHERE id = ?`, superuser, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

type accountRow interface {
	Scan(dest ...any) error
}

func scanAccount(row accountRow) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Username, &a.PasswordHash,
		&a.IsActive, &a.IsSuperuser, &a.CreatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}
