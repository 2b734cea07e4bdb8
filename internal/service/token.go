// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"edu-platform/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID      = uuid.NewString
)

// CustomClaims 定義 JWT 負載內容，Subject 為 username
type CustomClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"uid"`
	jwt.RegisteredClaims
}

// TokenSigner 以 HS256 簽發與驗證 bearer token
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenSigner(secret string, ttl time.Duration, issuer string) (*TokenSigner, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl %s", ttl)
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl, issuer: issuer}, nil
}

// Sign 依使用者簽發 token，回傳 token 字串與到期時間
func (s *TokenSigner) Sign(user model.User) (string, time.Time, error) {
	now := timeNow()
	expiresAt := now.Add(s.ttl)
	claims := CustomClaims{
		Username: user.Username,
		Role:     user.Role.String(),
		UserID:   user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Issuer:    s.issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify 驗證並解析 JWT，只接受 HMAC 簽章
func (s *TokenSigner) Verify(tokenString string) (*CustomClaims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(timeNow)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
