// Package jwtware implements the bearer-token gate for protected
// routes: extract the token from the Authorization header, verify it,
// resolve the subject to a user record, and attach the identity to the
// request before any handler runs.
package jwtware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	auth "github.com/goliatone/go-auth-api"
)

// ErrJWTMissingOrMalformed covers an absent Authorization header or a
// scheme that is not Bearer. It maps to the same 401 as a bad token.
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

// TokenVerifier mirrors auth.TokenService.Verify
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserResolver mirrors auth.Users.GetByID
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*auth.User, error)
}

type Config struct {
	// Filter skips the gate when it returns true
	Filter func(*fiber.Ctx) bool
	// SuccessHandler runs after the identity is attached; defaults to Next
	SuccessHandler fiber.Handler
	// ErrorHandler maps gate failures to responses
	ErrorHandler fiber.ErrorHandler
	// Verifier is required
	Verifier TokenVerifier
	// Resolver is required
	Resolver UserResolver
	// ContextKey is the Locals key for the resolved user
	ContextKey string
	// AuthScheme defaults to "Bearer"
	AuthScheme string
}

// New returns the gate middleware. The gate is synchronous: either the
// resolved user is attached under ContextKey and on the request context,
// or the request short-circuits through the error handler.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := TokenFromHeader(c.Get(fiber.HeaderAuthorization), cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		subject, err := cfg.Verifier.Verify(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		user, err := cfg.Resolver.GetByID(c.UserContext(), subject)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, user)
		c.SetUserContext(auth.WithContext(c.UserContext(), user))

		return cfg.SuccessHandler(c)
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Verifier == nil {
		panic("AUTH: JWT middleware configuration: Verifier is required.")
	}

	if cfg.Resolver == nil {
		panic("AUTH: JWT middleware configuration: Resolver is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// defaultErrorHandler keeps the failure classes indistinguishable from
// the outside: missing header, bad signature, and expired token all get
// the same 401. A subject that no longer resolves is a 404. Anything
// else is a store fault and bubbles to the app error handler.
func defaultErrorHandler(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrJWTMissingOrMalformed), errors.Is(err, auth.ErrTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to access this route",
		})
	case errors.Is(err, auth.ErrIdentityNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	default:
		return err
	}
}

// TokenFromHeader extracts the raw token from an Authorization header
// value using the given scheme. Scheme comparison is case insensitive.
func TokenFromHeader(header, authScheme string) (string, error) {
	authScheme = strings.TrimSpace(authScheme)
	l := len(authScheme)
	if l == 0 {
		return "", ErrJWTMissingOrMalformed
	}

	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		token := strings.TrimSpace(header[l:])
		if token != "" {
			return token, nil
		}
	}

	return "", ErrJWTMissingOrMalformed
}
