package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/repo"
	"kunstcollectie/pkg/utils"
)

var errEmailTaken = fmt.Errorf("%w: email already in use", domain.ErrConflict)

// UserInput 更新时 Password 为空表示不修改
type UserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

type UserService struct {
	users      domain.UserRepository
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(users domain.UserRepository, bcryptCost int, l *zap.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, log: l}
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter, p domain.Page) (domain.Paged[UserView], error) {
	users, total, err := s.users.List(ctx, f, p)
	if err != nil {
		return domain.Paged[UserView]{}, err
	}
	out := make([]UserView, len(users))
	for i := range users {
		out[i] = viewOf(&users[i])
	}
	return domain.Paged[UserView]{Items: out, Pagination: domain.NewPagination(total, p)}, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*UserView, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFoundf("gebruiker")
	}
	v := viewOf(u)
	return &v, nil
}

func (s *UserService) validate(in *UserInput, create bool) error {
	in.Email = normEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	var m missing
	m.str("email", in.Email)
	m.str("naam", in.Name)
	if create {
		m.str("wachtwoord", in.Password)
		m.str("rol", string(in.Role))
	}
	if err := m.err(); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.Invalid("invalid email address", "email")
	}
	if in.Role != "" && !in.Role.Valid() {
		return domain.Invalid("role must be admin or readonly", "rol")
	}
	if in.Password != "" && (len(in.Password) < 6 || len(in.Password) > utils.MaxPasswordBytes) {
		return domain.Invalid("password must be 6-72 characters", "wachtwoord")
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*UserView, error) {
	if err := s.validate(&in, true); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: in.Email, Name: in.Name, PasswordHash: hash, Role: in.Role}
	if err := s.users.Create(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, errEmailTaken
		}
		return nil, err
	}
	s.log.Info("user created", zap.Uint("uid", u.ID), zap.String("role", string(u.Role)))
	v := viewOf(u)
	return &v, nil
}

// Update 最后一个管理员不能被降级（ErrLastAdmin）
func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*UserView, error) {
	if err := s.validate(&in, false); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFoundf("gebruiker")
	}
	u.Email = in.Email
	u.Name = in.Name
	if in.Role != "" {
		u.Role = in.Role
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.users.Update(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, errEmailTaken
		}
		return nil, err
	}
	v := viewOf(u)
	return &v, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Uint("uid", id))
	return nil
}
