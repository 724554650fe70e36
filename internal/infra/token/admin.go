package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin       = "admin"
	defaultAdminTTL = 5 * time.Minute
)

var (
	ErrNoSecret     = errors.New("admin secret not configured")
	ErrInvalidToken = errors.New("invalid admin token")
)

// AdminTokens は注文一括削除用のHS256トークンを発行・検証する。
type AdminTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewAdminTokens(secret string, ttl time.Duration) *AdminTokens {
	if ttl <= 0 {
		ttl = defaultAdminTTL
	}
	return &AdminTokens{secret: []byte(secret), ttl: ttl}
}

func (a *AdminTokens) AdminToken(now time.Time) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrNoSecret
	}

	claims := jwt.MapClaims{
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(a.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

// VerifyAdmin は署名・期限・role=admin を確認する。
func (a *AdminTokens) VerifyAdmin(raw string) error {
	if len(a.secret) == 0 {
		return ErrNoSecret
	}
	if raw == "" {
		return ErrInvalidToken
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if role != RoleAdmin {
		return ErrInvalidToken
	}
	return nil
}
