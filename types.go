package auth

import (
	"context"
	"log/slog"
)

// Logger is the minimal structured logger the package needs. The
// variadic args are key value pairs; *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// TokenService issues and verifies signed bearer tokens
type TokenService interface {
	Issue(subjectID string) (string, error)
	Verify(token string) (string, error)
}

// Users is the credential store for user records
type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	SignUp(ctx context.Context, name, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
}

type defLogger struct{}

func (defLogger) Debug(msg string, args ...any) { slog.Debug(msg, args...) }
func (defLogger) Info(msg string, args ...any)  { slog.Info(msg, args...) }
func (defLogger) Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func (defLogger) Error(msg string, args ...any) { slog.Error(msg, args...) }
