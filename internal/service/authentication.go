// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 無論過期、竄改或格式錯誤，一律回傳此錯誤
var ErrInvalidToken = errors.New("invalid token")

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID int        `json:"id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Auth 持有簽章金鑰與令牌效期，於啟動時建立一次並注入各元件
type Auth struct {
	secret []byte
	ttl    time.Duration
}

// NewAuth 建立 Auth；secret 不可為空，ttl <= 0 時預設 1 小時
func NewAuth(secret string, ttl time.Duration) (*Auth, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Auth{secret: []byte(secret), ttl: ttl}, nil
}

// TTL 回傳令牌效期
func (a *Auth) TTL() time.Duration {
	return a.ttl
}

// AuthenticateUser 根據使用者結構和明文密碼驗證
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errors.New("invalid password")
	}
	return nil
}

// IssueAccessToken 依據使用者資訊產生 JWT，夾帶 id 與 role
func (a *Auth) IssueAccessToken(user model.User) (string, error) {
	now := timeNow()
	claims := CustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func (a *Auth) VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
