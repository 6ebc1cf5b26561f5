package utils

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 12 * time.Hour
)

// Tokens signs and checks owner access/refresh tokens with one HS256 secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	if secret == "" {
		secret = "changeme"
	}
	return &Tokens{secret: []byte(secret), now: time.Now}
}

type Claims struct {
	Role   string
	UserID uint
}

func (t *Tokens) sign(role string, userID uint, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_role": role,
		"id":        userID,
		"exp":       t.now().Add(ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

func (t *Tokens) GenerateTokens(role string, userID uint) (string, string, error) {
	access, err := t.sign(role, userID, accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := t.sign(role, userID, refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *Tokens) ValidateToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if _, ok := claims["exp"].(float64); !ok {
		return Claims{}, errors.New("invalid or missing expiration claim")
	}

	role, ok := claims["user_role"].(string)
	if !ok {
		return Claims{}, errors.New("role not found in token")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return Claims{}, errors.New("id not found or invalid type")
	}
	return Claims{Role: role, UserID: uint(id)}, nil
}

// RefreshTokens issues a new pair from a still valid refresh token.
func (t *Tokens) RefreshTokens(oldRefreshToken string) (string, string, error) {
	claims, err := t.ValidateToken(oldRefreshToken)
	if err != nil {
		return "", "", fmt.Errorf("refresh token rejected: %w", err)
	}
	return t.GenerateTokens(claims.Role, claims.UserID)
}
