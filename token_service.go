package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the fixed payload carried by every issued token. The
// subject is the user id; expiry is set at issuance. Tokens missing
// either field fail verification.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey      []byte
	tokenExpiration time.Duration
	logger          Logger
}

// NewTokenService creates a new TokenService instance. The signing key
// comes from configuration; an empty key is a startup error, tokens are
// never issued without one.
func NewTokenService(signingKey []byte, tokenExpiration time.Duration, logger Logger) (*TokenServiceImpl, error) {
	if len(signingKey) == 0 {
		return nil, errors.New("token service requires a signing key")
	}

	if tokenExpiration <= 0 {
		tokenExpiration = 24 * time.Hour
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenServiceImpl{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		logger:          logger,
	}, nil
}

// Issue creates a signed token for the given subject, valid from now
// until now plus the configured expiration window.
func (ts *TokenServiceImpl) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", ErrNoEmptyString
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the decoded subject.
// Every failure collapses into ErrTokenInvalid so callers cannot tell
// an expired token from a forged one.
func (ts *TokenServiceImpl) Verify(tokenString string) (string, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		ts.logger.Debug("token verification failed", "error", err)
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		ts.logger.Debug("token claims missing subject")
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
