package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenSettings comes from the jwt block of the config file.
type TokenSettings struct {
	Issuer   string
	Audience string
	SignKey  string // HS256 requires at least 16 characters
	Timeout  time.Duration
}

type IdentityClaims struct {
	jwt.RegisteredClaims
}

// CreateIdentityToken issues an HS256 token whose subject is the user id.
// Each token carries a fresh jti so revocation lists can address it.
func CreateIdentityToken(userID string, settings TokenSettings) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    settings.Issuer,
			Audience:  jwt.ClaimStrings{settings.Audience},
			Subject:   userID,
			ID:        uuid.NewString(),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(settings.Timeout)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(settings.SignKey))
}

// ParseIdentityToken validates signature, expiry, issuer and audience and
// returns the subject user id.
func ParseIdentityToken(tokenStr string, settings TokenSettings) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(settings.SignKey), nil
	},
		jwt.WithIssuer(settings.Issuer),
		jwt.WithAudience(settings.Audience),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}
