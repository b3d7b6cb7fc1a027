// Package auth mints and verifies the JWTs used by the SQL record store:
// access tokens naming the signed-in user and lockbox capability tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Token scopes.
const (
	ScopeAccess  = "access"
	ScopeLockbox = "lockbox"
)

// Claims carries the registered claims plus the user and the scope the
// token grants.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	Scope  string `json:"scope"`
}

func GenerateToken(userID, email, scope string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
		Scope:  scope,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and checks it grants scope. Expired
// tokens yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, scope string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" || claims.Scope != scope {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
