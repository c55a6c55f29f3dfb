package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenService("a_test_secret_that_is_long_enough", time.Hour)

	token, err := tokens.GenerateToken(42, []string{"biro"})
	req.NoError(err)

	claims, err := tokens.ValidateToken(token)
	req.NoError(err)
	req.Equal(int64(42), claims.ProfileID)
	req.Equal([]string{"biro"}, claims.Roles)
}

func TestValidateToken_Rejects(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenService("a_test_secret_that_is_long_enough", time.Hour)

	other, err := NewTokenService("another_secret", time.Hour).GenerateToken(42, nil)
	req.NoError(err)
	_, err = tokens.ValidateToken(other)
	req.ErrorIs(err, jwt.ErrTokenSignatureInvalid)

	expired, err := NewTokenService("a_test_secret_that_is_long_enough", -time.Minute).GenerateToken(42, nil)
	req.NoError(err)
	_, err = tokens.ValidateToken(expired)
	req.ErrorIs(err, jwt.ErrTokenExpired)

	anonymous, err := tokens.GenerateToken(0, nil)
	req.NoError(err)
	_, err = tokens.ValidateToken(anonymous)
	req.Error(err)

	_, err = tokens.ValidateToken("definitely.not.a-jwt")
	req.Error(err)
}

func TestCredential(t *testing.T) {
	req := require.New(t)

	r := httptest.NewRequest("GET", "/ws/biro/match/1/?token=abc", nil)
	req.Equal("abc", Credential(r))

	r = httptest.NewRequest("GET", "/ws/biro/match/1/", nil)
	r.Header.Set("Authorization", "Bearer xyz")
	req.Equal("xyz", Credential(r))

	r = httptest.NewRequest("GET", "/ws/biro/match/1/?token=", nil)
	req.Empty(Credential(r))
}

func TestProfileIDContext(t *testing.T) {
	req := require.New(t)
	_, ok := ProfileIDFrom(context.Background())
	req.False(ok)

	id, ok := ProfileIDFrom(WithProfileID(context.Background(), 7))
	req.True(ok)
	req.Equal(int64(7), id)
}
