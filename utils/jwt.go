package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AccessClaims is the authorization payload carried by bearer tokens.
type AccessClaims struct {
	Role        string   `json:"role"`
	Services    []string `json:"services"`
	Permissions []string `json:"permissions"`
	jwt.StandardClaims
}

// TokenIssuer signs and validates HS256 access tokens.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// GenerateToken creates a signed JWT token for the given principal.
// The token expires after the specified duration.
func (t *TokenIssuer) GenerateToken(subject, role string, services, permissions []string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role:        role,
		Services:    services,
		Permissions: permissions,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses and validates a token string and returns its claims.
func (t *TokenIssuer) ValidateToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	return claims, nil
}
