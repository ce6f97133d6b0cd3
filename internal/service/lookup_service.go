package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/cache"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/repo"
)

const lookupTTL = 10 * time.Minute

var errLookupTaken = fmt.Errorf("%w: type name already in use", domain.ErrConflict)

// LookupService 作品类型 / 地点类型；列表走 redis 缓存（未配置时直查）
type LookupService struct {
	lookups domain.LookupRepository
	cache   *cache.Cache
	log     *zap.Logger
}

func NewLookupService(lookups domain.LookupRepository, c *cache.Cache, l *zap.Logger) *LookupService {
	return &LookupService{lookups: lookups, cache: c, log: l}
}

func lookupKey(kind domain.LookupKind) string { return "lookup:" + string(kind) }

func checkKind(kind domain.LookupKind) error {
	if !kind.Valid() {
		return domain.NotFoundf("type")
	}
	return nil
}

func (s *LookupService) List(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if !s.cache.Enabled() {
		return s.lookups.List(ctx, kind)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, lookupKey(kind), lookupTTL, func(ctx context.Context) ([]domain.Lookup, error) {
		return s.lookups.List(ctx, kind)
	})
}

func (s *LookupService) Get(ctx context.Context, kind domain.LookupKind, id uint) (*domain.Lookup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	l, err := s.lookups.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.NotFoundf("type")
	}
	return l, nil
}

func (s *LookupService) invalidate(ctx context.Context, kind domain.LookupKind) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, lookupKey(kind)); err != nil {
		s.log.Warn("lookup cache invalidate failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (s *LookupService) checkName(ctx context.Context, kind domain.LookupKind, name string, exceptID uint) error {
	other, err := s.lookups.FindByName(ctx, kind, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != exceptID {
		return errLookupTaken
	}
	return nil
}

func (s *LookupService) Create(ctx context.Context, kind domain.LookupKind, in domain.LookupFields) (*domain.Lookup, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	var m missing
	m.str("naam", in.Name)
	if err := m.err(); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, kind, in.Name, 0); err != nil {
		return nil, err
	}
	l := &domain.Lookup{Name: in.Name, Description: strings.TrimSpace(in.Description)}
	if err := s.lookups.Create(ctx, kind, l); err != nil {
		if repo.IsDupKey(err) {
			return nil, errLookupTaken
		}
		return nil, err
	}
	s.invalidate(ctx, kind)
	return l, nil
}

func (s *LookupService) Update(ctx context.Context, kind domain.LookupKind, id uint, in domain.LookupFields) (*domain.Lookup, error) {
	l, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		if err := s.checkName(ctx, kind, name, id); err != nil {
			return nil, err
		}
		l.Name = name
	}
	l.Description = strings.TrimSpace(in.Description)
	if err := s.lookups.Update(ctx, kind, l); err != nil {
		if repo.IsDupKey(err) {
			return nil, errLookupTaken
		}
		return nil, err
	}
	s.invalidate(ctx, kind)
	return l, nil
}

func (s *LookupService) Delete(ctx context.Context, kind domain.LookupKind, id uint) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := s.lookups.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.invalidate(ctx, kind)
	return nil
}
