package auth

import (
	"context"
	"errors"
	"fmt"
)

// Auther orchestrates signup and login on top of the credential store,
// the password hasher, and the token service.
type Auther struct {
	users  Users
	tokens TokenService
	logger Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users Users, tokens TokenService) *Auther {
	return &Auther{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// SignUp creates a user if the email is not taken and issues a token
// for the new identity. Payload shape validation happens at the HTTP
// boundary; this layer only enforces uniqueness and hashing.
func (s *Auther) SignUp(ctx context.Context, name, email, password string) (string, *User, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrDuplicateUser
	}

	if !errors.Is(err, ErrIdentityNotFound) {
		s.logger.Error("signup lookup error", "error", err)
		return "", nil, fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		s.logger.Error("signup hash error", "error", err)
		return "", nil, fmt.Errorf("signup hash: %w", err)
	}

	user, err := s.users.Create(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// The unique constraint closes the check-then-create race, so a
		// concurrent signup still surfaces as a duplicate here.
		if errors.Is(err, ErrDuplicateUser) {
			return "", nil, ErrDuplicateUser
		}
		s.logger.Error("signup create error", "error", err)
		return "", nil, fmt.Errorf("signup create: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		s.logger.Error("signup token error", "error", err)
		return "", nil, fmt.Errorf("signup token: %w", err)
	}

	return token, user, nil
}

// Login verifies the credentials and issues a token. An unknown email
// and a wrong password both return ErrInvalidCredentials so responses
// cannot be used for account enumeration.
func (s *Auther) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.users.GetByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("login lookup error", "error", err)
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return "", nil, ErrInvalidCredentials
		}
		// A compare failure that is not a mismatch means the stored hash
		// is unusable; surface it as an internal fault, not a 401.
		s.logger.Error("login compare error", "user_id", user.ID.String(), "error", err)
		return "", nil, fmt.Errorf("login compare: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		s.logger.Error("login token error", "error", err)
		return "", nil, fmt.Errorf("login token: %w", err)
	}

	return token, user, nil
}
