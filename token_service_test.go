package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	auth "github.com/goliatone/go-auth-api"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func newTestTokenService(t *testing.T, ttl time.Duration) *auth.TokenServiceImpl {
	t.Helper()
	service, err := auth.NewTokenService(testSigningKey, ttl, nil)
	require.NoError(t, err)
	return service
}

func TestNewTokenService(t *testing.T) {
	t.Run("creates token service", func(t *testing.T) {
		service, err := auth.NewTokenService(testSigningKey, 24*time.Hour, nil)
		assert.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("refuses empty signing key", func(t *testing.T) {
		service, err := auth.NewTokenService(nil, 24*time.Hour, nil)
		assert.Error(t, err)
		assert.Nil(t, service)
	})
}

func TestTokenService_Issue(t *testing.T) {
	service := newTestTokenService(t, 24*time.Hour)

	t.Run("issues a verifiable token", func(t *testing.T) {
		subject := uuid.New().String()

		token, err := service.Issue(subject)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := service.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, subject, got)
	})

	t.Run("sets a 24h expiry window", func(t *testing.T) {
		token, err := service.Issue("some-subject")
		require.NoError(t, err)

		claims := &auth.TokenClaims{}
		_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return testSigningKey, nil
		})
		require.NoError(t, err)

		window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
		assert.Equal(t, 24*time.Hour, window)
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		_, err := service.Issue("")
		assert.Error(t, err)
	})
}

func TestTokenService_Verify(t *testing.T) {
	service := newTestTokenService(t, 24*time.Hour)

	subject := uuid.New().String()
	token, err := service.Issue(subject)
	require.NoError(t, err)

	t.Run("valid token returns subject", func(t *testing.T) {
		got, err := service.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, subject, got)
	})

	t.Run("tampered token is invalid", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		// flip a byte in the claims segment, keep the original signature
		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err := service.Verify(tampered)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		_, err := service.Verify(expiredToken(t, subject))
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("token signed with another key is invalid", func(t *testing.T) {
		other, err := auth.NewTokenService([]byte("other-key"), 24*time.Hour, nil)
		require.NoError(t, err)

		token, err := other.Issue(subject)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("token without subject is invalid", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := raw.SignedString(testSigningKey)
		require.NoError(t, err)

		_, err = service.Verify(signed)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("token without expiry is invalid", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: subject,
		})
		signed, err := raw.SignedString(testSigningKey)
		require.NoError(t, err)

		_, err = service.Verify(signed)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("unexpected signing algorithm is invalid", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Verify(signed)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("garbage input is invalid", func(t *testing.T) {
		_, err := service.Verify("not-a-token")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("all failures share the same error", func(t *testing.T) {
		_, garbageErr := service.Verify("garbage")
		_, expiredErr := service.Verify(expiredToken(t, subject))

		assert.Equal(t, garbageErr, expiredErr)
	})
}

// expiredToken signs a token whose window elapsed an hour ago
func expiredToken(t *testing.T, subject string) string {
	t.Helper()

	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	})

	signed, err := raw.SignedString(testSigningKey)
	require.NoError(t, err)

	return signed
}
