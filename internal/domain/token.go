package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"uid"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol,omitempty"`
}
