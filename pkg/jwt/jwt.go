package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

// TokenService issues and verifies stateless HS256 access tokens. There is no
// revocation list; exposure of a leaked token is bounded by the short expiry.
type TokenService struct {
	secret       []byte
	accessExpiry time.Duration
	issuer       string
}

func NewTokenService(secret string, accessExpiry time.Duration, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &TokenService{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
		issuer:       issuer,
	}, nil
}

// Issue signs an access token carrying the subject id, handle and role.
func (s *TokenService) Issue(userID int64, usuario, rol string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessExpiry)

	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:  userID,
		Usuario: usuario,
		Rol:     rol,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a signed access token.
func (s *TokenService) Verify(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AccessExpiry returns the configured access-token lifetime.
func (s *TokenService) AccessExpiry() time.Duration {
	return s.accessExpiry
}
