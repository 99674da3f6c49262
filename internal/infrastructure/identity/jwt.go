package identity

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier resolves users by verifying access tokens locally against
// the shared HS256 signing secret, with no call to the auth provider. The
// provider still mints the tokens; this only checks them.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) GetCurrentUser(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, application.ErrNoUser
	}

	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, application.ErrNoUser
	}

	if claims.Subject == "" {
		return nil, application.ErrNoUser
	}

	return &domain.User{
		ID:    claims.Subject,
		Email: claims.Email,
	}, nil
}
