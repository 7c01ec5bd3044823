package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns a Users store backed by bun. Email
// uniqueness is enforced by the table constraint, not by lookup logic,
// so concurrent signups for the same email cannot both succeed.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// GetByEmail fetches a user without the password hash, mirroring the
// default read path. Use GetByEmailWithPassword for credential checks.
func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		ExcludeColumn("password_hash").
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

// GetByEmailWithPassword fetches a user including the password hash
func (a *users) GetByEmailWithPassword(ctx context.Context, email string) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

// GetByID fetches a user by its identifier, without the password hash
func (a *users) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	record := &User{}

	err = a.db.NewSelect().
		Model(record).
		ExcludeColumn("password_hash").
		Where("?TableAlias.id = ?", uid).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

// Create persists a new user record. A unique constraint violation on
// email maps to ErrDuplicateUser.
func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	prepareUserDefaults(record)

	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return record, nil
}

// CreateSchema bootstraps the users table, including the unique email
// constraint declared on the model.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
