//go:build unit || e2e

package authtest

import (
	"time"

	appjwt "hbot-booking/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IssueToken signs a token the way the external identity provider would.
// Only tests mint tokens; the service itself never does.
func IssueToken(secret string, userID uuid.UUID, role string) (string, error) {
	claims := appjwt.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
