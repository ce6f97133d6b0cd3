package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kunstcollectie/internal/domain"
)

type Claims struct {
	UID   uint        `json:"uid"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Denylist 为空时注销只在客户端生效
	Denylist Denylist
}

func (j *JWTer) Issue(u *domain.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(j.TTL)
	claims := Claims{
		UID:   u.ID,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.Issuer,
			Subject:   fmt.Sprint(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(j.Secret)
	return s, exp, err
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Verify = Parse + 注销检查；任何失败都归为 ErrUnauthenticated
func (j *JWTer) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !c.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", domain.ErrUnauthenticated)
	}
	if j.Denylist != nil && c.ID != "" {
		revoked, err := j.Denylist.IsRevoked(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)
		}
	}
	return c, nil
}

// Revoke 把 token 放进黑名单直到过期
func (j *JWTer) Revoke(ctx context.Context, c *Claims) error {
	if j.Denylist == nil || c == nil || c.ID == "" {
		return nil
	}
	until := time.Now().Add(time.Minute)
	if c.ExpiresAt != nil {
		until = c.ExpiresAt.Time
	}
	return j.Denylist.Revoke(ctx, c.ID, until)
}

// Authorize 会话是否满足所需角色
func Authorize(c *Claims, required domain.Role) bool {
	return c != nil && c.Role.Satisfies(required)
}
