package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/auth"
	"kunstcollectie/internal/domain"
	"kunstcollectie/pkg/utils"
)

type UserView struct {
	ID          uint        `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"naam"`
	Role        domain.Role `json:"rol"`
	LastLoginAt *time.Time  `json:"laatst_ingelogd,omitempty"`
}

func viewOf(u *domain.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, LastLoginAt: u.LastLoginAt}
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
	now   func() time.Time

	dummyOnce sync.Once
	dummy     string
}

func NewAuthService(users domain.UserRepository, j *auth.JWTer, l *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: j, log: l, now: time.Now}
}

// dummyHash 用户不存在时也做一次 bcrypt，避免时序差异泄露邮箱是否存在
func (s *AuthService) dummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := utils.HashPassword("timing-equaliser", 0)
		if err != nil {
			s.log.Error("dummy hash", zap.Error(err))
		}
		s.dummy = h
	})
	return s.dummy
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Authenticate 未知邮箱与密码错误返回同一个 ErrInvalidCredentials
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	var m missing
	m.str("email", email)
	m.str("wachtwoord", password)
	if err := m.err(); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, normEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		utils.CheckPassword(password, s.dummyHash())
		return nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.TouchLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now

	tok, exp, err := s.jwt.Issue(u)
	if err != nil {
		return nil, err
	}
	s.log.Info("login", zap.Uint("uid", u.ID), zap.String("role", string(u.Role)))
	return &Session{Token: tok, ExpiresAt: exp, User: viewOf(u)}, nil
}

func (s *AuthService) Logout(ctx context.Context, c *auth.Claims) error {
	return s.jwt.Revoke(ctx, c)
}

// Me 当前用户；token 有效但用户已被删除视为未认证
func (s *AuthService) Me(ctx context.Context, uid uint) (*UserView, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	v := viewOf(u)
	return &v, nil
}
