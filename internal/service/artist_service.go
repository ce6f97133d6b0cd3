package service

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
)

type ArtistService struct {
	artists  domain.ArtistRepository
	artworks domain.ArtworkRepository
	store    *storage.Store
	portrait UploadPolicy
	log      *zap.Logger
}

func NewArtistService(artists domain.ArtistRepository, artworks domain.ArtworkRepository, store *storage.Store, portrait UploadPolicy, l *zap.Logger) *ArtistService {
	return &ArtistService{artists: artists, artworks: artworks, store: store, portrait: portrait, log: l}
}

func (s *ArtistService) List(ctx context.Context, f domain.ArtistFilter, p domain.Page) (domain.Paged[domain.ArtistSummary], error) {
	items, total, err := s.artists.List(ctx, f, p)
	if err != nil {
		return domain.Paged[domain.ArtistSummary]{}, err
	}
	return domain.Paged[domain.ArtistSummary]{Items: items, Pagination: domain.NewPagination(total, p)}, nil
}

func (s *ArtistService) Get(ctx context.Context, id uint) (*domain.ArtistSummary, error) {
	a, err := s.artists.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFoundf("kunstenaar")
	}
	return a, nil
}

// Artworks 某艺术家的作品（分页）
func (s *ArtistService) Artworks(ctx context.Context, id uint, p domain.Page) (domain.Paged[domain.Artwork], error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domain.Paged[domain.Artwork]{}, err
	}
	items, total, err := s.artworks.List(ctx, domain.ArtworkFilter{ArtistID: id}, p)
	if err != nil {
		return domain.Paged[domain.Artwork]{}, err
	}
	return domain.Paged[domain.Artwork]{Items: items, Pagination: domain.NewPagination(total, p)}, nil
}

func validateArtist(in *domain.ArtistFields) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Website = strings.TrimSpace(in.Website)
	var m missing
	m.str("naam", in.Name)
	if err := m.err(); err != nil {
		return err
	}
	if in.BirthDate != nil && in.DeathDate != nil && in.DeathDate.Before(*in.BirthDate) {
		return domain.Invalid("date of death precedes date of birth", "overlijdensdatum")
	}
	if in.Website != "" {
		raw := in.Website
		if !strings.Contains(raw, "://") {
			raw = "http://" + raw
		}
		if u, err := url.Parse(raw); err != nil || u.Host == "" {
			return domain.Invalid("invalid website url", "website")
		}
	}
	return nil
}

func applyArtist(a *domain.Artist, in *domain.ArtistFields) {
	a.Name = in.Name
	a.Address = in.Address
	a.PostalCode = in.PostalCode
	a.City = in.City
	a.Country = in.Country
	a.Phone = in.Phone
	a.Email = in.Email
	a.Website = in.Website
	a.BirthDate = in.BirthDate
	a.DeathDate = in.DeathDate
	a.Biography = in.Biography
}

func (s *ArtistService) Create(ctx context.Context, in domain.ArtistFields) (*domain.ArtistSummary, error) {
	if err := validateArtist(&in); err != nil {
		return nil, err
	}
	a := &domain.Artist{}
	applyArtist(a, &in)
	if err := s.artists.Create(ctx, a); err != nil {
		return nil, err
	}
	return &domain.ArtistSummary{Artist: *a}, nil
}

func (s *ArtistService) Update(ctx context.Context, id uint, in domain.ArtistFields) (*domain.ArtistSummary, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = cur.Name
	}
	if err := validateArtist(&in); err != nil {
		return nil, err
	}
	a := cur.Artist
	applyArtist(&a, &in)
	if err := s.artists.Update(ctx, &a); err != nil {
		return nil, err
	}
	return &domain.ArtistSummary{Artist: a, ArtworkCount: cur.ArtworkCount}, nil
}

// Delete 仍有作品时返回 ConflictError；成功后删除肖像文件
func (s *ArtistService) Delete(ctx context.Context, id uint) error {
	a, err := s.artists.Delete(ctx, id)
	if err != nil {
		return err
	}
	if a.PortraitURL != "" {
		removeFiles(s.store, s.log, a.PortraitURL)
	}
	return nil
}

// SetPortrait 上传新肖像；DB 更新成功后再删旧文件
func (s *ArtistService) SetPortrait(ctx context.Context, id uint, up domain.Upload) (*domain.ArtistSummary, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ext, body, err := s.portrait.Check(up, "portret")
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Save(storage.DirPortraits, s.store.UniqueName("portret", ext), body)
	if err != nil {
		return nil, err
	}
	old := cur.PortraitURL
	a := cur.Artist
	a.PortraitURL = stored
	if err := s.artists.Update(ctx, &a); err != nil {
		removeFiles(s.store, s.log, stored)
		return nil, err
	}
	if old != "" {
		removeFiles(s.store, s.log, old)
	}
	return &domain.ArtistSummary{Artist: a, ArtworkCount: cur.ArtworkCount}, nil
}
