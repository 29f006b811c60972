package domain

import "time"

// Account is a registered user of the service. Email and username are each
// globally unique; uniqueness is enforced by the account service, not the
// schema.
type Account struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string // argon2id encoded, never serialized to callers
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
}

// AccountUpdate carries a partial update. Nil fields are left untouched;
// a non-nil Password is re-hashed before persisting.
type AccountUpdate struct {
	Email    *string
	Username *string
	Password *string
}
