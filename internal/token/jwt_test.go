package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	sessionID, emailID := uuid.New(), uuid.New()

	tok, err := j.GenerateSessionToken(sessionID, emailID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	gotSession, gotEmail, err := j.ParseSessionToken(tok)
	require.NoError(t, err)
	require.Equal(t, sessionID, gotSession)
	require.Equal(t, emailID, gotEmail)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret")

	tok, err := j.GenerateSessionToken(uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, _, err = j.ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret").GenerateSessionToken(uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, err = NewJWT("other").ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_RejectsForeignClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
	}{
		{
			name: "wrong issuer",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString(), Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
				EmailID:          uuid.New(),
			},
		},
		{
			name: "malformed jti",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{ID: "not-a-uuid", Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
				EmailID:          uuid.New(),
			},
		},
		{
			name: "missing email id",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString(), Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte("secret"))
			require.NoError(t, err)

			_, _, err = NewJWT("secret").ParseSessionToken(tok)
			require.Error(t, err)
		})
	}
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString(), Issuer: issuer},
		EmailID:          uuid.New(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = NewJWT("secret").ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	_, _, err := NewJWT("secret").ParseSessionToken("not.a.jwt")
	require.Error(t, err)
}
