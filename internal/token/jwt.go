package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/model"
)

const issuer = "courseauth"

// Claims carries the verified email identity of a site session.
type Claims struct {
	jwt.RegisteredClaims
	EmailID uuid.UUID `json:"email_id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

// GenerateSessionToken signs a session cookie value. The session id is
// carried as the JTI.
func (j *JWT) GenerateSessionToken(sessionID, emailID uuid.UUID, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		EmailID: emailID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

func (j *JWT) ParseSessionToken(tokenString string) (uuid.UUID, uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, uuid.Nil, fmt.Errorf("session token is invalid")
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("session token has malformed jti: %w", err)
	}
	if claims.EmailID == uuid.Nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("session token has no %s", model.SessionKey)
	}

	return sessionID, claims.EmailID, nil
}
