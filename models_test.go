package auth_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	auth "github.com/goliatone/go-auth-api"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSONNeverExposesHash(t *testing.T) {
	now := time.Now()
	user := &auth.User{
		ID:           uuid.New(),
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    &now,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(string(raw)), "password")
	assert.NotContains(t, string(raw), user.PasswordHash)
}

func TestUserPublicView(t *testing.T) {
	user := &auth.User{
		ID:           uuid.New(),
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "some-hash",
	}

	public := user.Public()

	assert.Equal(t, user.ID.String(), public.ID)
	assert.Equal(t, "Ann", public.Name)
	assert.Equal(t, "ann@x.com", public.Email)

	raw, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "some-hash")
}
