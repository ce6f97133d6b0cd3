package service

import (
	"context"
	"strings"

	"kunstcollectie/internal/domain"
)

type LocationService struct {
	locations domain.LocationRepository
	artworks  domain.ArtworkRepository
	lookups   domain.LookupRepository
}

func NewLocationService(locations domain.LocationRepository, artworks domain.ArtworkRepository, lookups domain.LookupRepository) *LocationService {
	return &LocationService{locations: locations, artworks: artworks, lookups: lookups}
}

func (s *LocationService) List(ctx context.Context, f domain.LocationFilter, p domain.Page) (domain.Paged[domain.LocationSummary], error) {
	items, total, err := s.locations.List(ctx, f, p)
	if err != nil {
		return domain.Paged[domain.LocationSummary]{}, err
	}
	return domain.Paged[domain.LocationSummary]{Items: items, Pagination: domain.NewPagination(total, p)}, nil
}

func (s *LocationService) Get(ctx context.Context, id uint) (*domain.LocationSummary, error) {
	l, err := s.locations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.NotFoundf("locatie")
	}
	return l, nil
}

func (s *LocationService) Artworks(ctx context.Context, id uint, p domain.Page) (domain.Paged[domain.Artwork], error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domain.Paged[domain.Artwork]{}, err
	}
	items, total, err := s.artworks.List(ctx, domain.ArtworkFilter{LocationID: id}, p)
	if err != nil {
		return domain.Paged[domain.Artwork]{}, err
	}
	return domain.Paged[domain.Artwork]{Items: items, Pagination: domain.NewPagination(total, p)}, nil
}

func (s *LocationService) validate(ctx context.Context, in *domain.LocationFields) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	var m missing
	m.str("naam", in.Name)
	m.str("adres", in.Address)
	m.str("postcode", in.PostalCode)
	m.str("plaats", in.City)
	m.str("land", in.Country)
	m.id("type_id", in.TypeID)
	if err := m.err(); err != nil {
		return err
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return domain.Invalid("latitude out of range", "latitude")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return domain.Invalid("longitude out of range", "longitude")
	}
	t, err := s.lookups.Get(ctx, domain.KindLocationType, in.TypeID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.Invalid("referenced records do not exist", "type_id")
	}
	return nil
}

func applyLocation(l *domain.Location, in *domain.LocationFields) {
	l.Name = in.Name
	l.Address = in.Address
	l.PostalCode = in.PostalCode
	l.City = in.City
	l.Country = in.Country
	l.TypeID = in.TypeID
	l.Latitude = in.Latitude
	l.Longitude = in.Longitude
}

func (s *LocationService) Create(ctx context.Context, in domain.LocationFields) (*domain.LocationSummary, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	l := &domain.Location{}
	applyLocation(l, &in)
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return s.Get(ctx, l.ID)
}

// Update 未提供的必填字段保留原值
func (s *LocationService) Update(ctx context.Context, id uint, in domain.LocationFields) (*domain.LocationSummary, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	keep := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	keep(&in.Name, cur.Name)
	keep(&in.Address, cur.Address)
	keep(&in.PostalCode, cur.PostalCode)
	keep(&in.City, cur.City)
	keep(&in.Country, cur.Country)
	if in.TypeID == 0 {
		in.TypeID = cur.TypeID
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	row := domain.Location{ID: cur.ID, CreatedAt: cur.CreatedAt}
	applyLocation(&row, &in)
	if err := s.locations.Update(ctx, &row); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *LocationService) Delete(ctx context.Context, id uint) error {
	return s.locations.Delete(ctx, id)
}
