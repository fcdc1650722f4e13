package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worksuite/worktime-engine/auth"
)

func TestPasswordHash_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, auth.CheckPassword(hash, "correct horse battery staple"))
	assert.Error(t, auth.CheckPassword(hash, "wrong password"))
}

func TestTokens_GenerateAndValidate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &auth.User{ID: "u1", Username: "ada"}

	token, err := issuer.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
}

func TestTokens_WrongSecret_Rejected(t *testing.T) {
	token, err := auth.NewTokenIssuer("secret-a", time.Hour).Generate(&auth.User{ID: "u1"})
	require.NoError(t, err)

	_, err = auth.NewTokenIssuer("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokens_Expired_Rejected(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.Generate(&auth.User{ID: "u1"})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestTokens_Garbage_Rejected(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Validate(token)
		assert.Error(t, err, "token %q", token)
	}
}
