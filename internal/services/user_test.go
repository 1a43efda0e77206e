package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	s := NewUserService(nil, "test-secret")

	token, err := s.GenerateJWT("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.ValidateJWT(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewUserService(nil, "secret-a")
	verifier := NewUserService(nil, "secret-b")

	token, err := issuer.GenerateJWT("user-1")
	require.NoError(t, err)

	_, err = verifier.ValidateJWT(token)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	s := NewUserService(nil, "test-secret")

	_, err := s.ValidateJWT("not-a-token")
	require.Error(t, err)
}

func TestGenerateCode_Shape(t *testing.T) {
	code := generateCode()
	require.Len(t, code, codeLength)
	for _, c := range code {
		require.Contains(t, codeChars, string(c))
	}
}
