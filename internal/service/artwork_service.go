package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
)

type ArtworkService struct {
	artworks  domain.ArtworkRepository
	artists   domain.ArtistRepository
	locations domain.LocationRepository
	suppliers domain.SupplierRepository
	lookups   domain.LookupRepository
	store     *storage.Store
	events    events.Publisher
	log       *zap.Logger
}

func NewArtworkService(
	artworks domain.ArtworkRepository,
	artists domain.ArtistRepository,
	locations domain.LocationRepository,
	suppliers domain.SupplierRepository,
	lookups domain.LookupRepository,
	store *storage.Store,
	pub events.Publisher,
	l *zap.Logger,
) *ArtworkService {
	return &ArtworkService{
		artworks: artworks, artists: artists, locations: locations,
		suppliers: suppliers, lookups: lookups,
		store: store, events: pub, log: l,
	}
}

func (s *ArtworkService) List(ctx context.Context, f domain.ArtworkFilter, p domain.Page) (domain.Paged[domain.Artwork], error) {
	if f.Status != "" && !f.Status.Valid() {
		return domain.Paged[domain.Artwork]{}, domain.Invalid("unknown status", "status")
	}
	items, total, err := s.artworks.List(ctx, f, p)
	if err != nil {
		return domain.Paged[domain.Artwork]{}, err
	}
	return domain.Paged[domain.Artwork]{Items: items, Pagination: domain.NewPagination(total, p)}, nil
}

func (s *ArtworkService) Get(ctx context.Context, id uint) (*domain.Artwork, error) {
	a, err := s.artworks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFoundf("kunstwerk")
	}
	return a, nil
}

func (s *ArtworkService) validate(ctx context.Context, in *domain.ArtworkFields) error {
	in.Title = strings.TrimSpace(in.Title)
	var m missing
	m.str("titel", in.Title)
	m.id("kunstenaar_id", in.ArtistID)
	m.id("type_id", in.TypeID)
	m.id("locatie_id", in.LocationID)
	if err := m.err(); err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = domain.StatusOwned
	}
	if !in.Status.Valid() {
		return domain.Invalid("status must be one of: in bezit, verkocht, uitgeleend", "status")
	}
	for name, v := range map[string]*float64{
		"hoogte": in.Height, "breedte": in.Width, "diepte": in.Depth, "gewicht": in.Weight,
		"aankoopprijs": in.PurchasePrice, "huidige_marktprijs": in.MarketValue, "verzekerde_waarde": in.InsuredValue,
	} {
		if err := nonNegative(name, v); err != nil {
			return err
		}
	}
	return s.checkRefs(ctx, in)
}

// checkRefs 外键必须指向存在的记录
func (s *ArtworkService) checkRefs(ctx context.Context, in *domain.ArtworkFields) error {
	var bad []string
	if a, err := s.artists.Get(ctx, in.ArtistID); err != nil {
		return err
	} else if a == nil {
		bad = append(bad, "kunstenaar_id")
	}
	if t, err := s.lookups.Get(ctx, domain.KindArtworkType, in.TypeID); err != nil {
		return err
	} else if t == nil {
		bad = append(bad, "type_id")
	}
	if l, err := s.locations.Get(ctx, in.LocationID); err != nil {
		return err
	} else if l == nil {
		bad = append(bad, "locatie_id")
	}
	if in.SupplierID != nil {
		if sp, err := s.suppliers.Get(ctx, *in.SupplierID); err != nil {
			return err
		} else if sp == nil {
			bad = append(bad, "leverancier_id")
		}
	}
	if len(bad) > 0 {
		return domain.Invalid("referenced records do not exist", bad...)
	}
	return nil
}

func apply(a *domain.Artwork, in *domain.ArtworkFields) {
	a.Title = in.Title
	a.ArtistID = in.ArtistID
	a.TypeID = in.TypeID
	a.LocationID = in.LocationID
	a.SupplierID = in.SupplierID
	a.Height, a.Width, a.Depth, a.Weight = in.Height, in.Width, in.Depth, in.Weight
	a.ProductionDate = in.ProductionDate
	a.IsEstimatedDate = in.IsEstimatedDate
	a.IsEdition = in.IsEdition
	a.EditionDescription = in.EditionDescription
	a.IsSigned = in.IsSigned
	a.SignatureLocation = in.SignatureLocation
	a.Description = in.Description
	a.PurchaseDate = in.PurchaseDate
	a.PurchasePrice = in.PurchasePrice
	a.MarketValue = in.MarketValue
	a.InsuredValue = in.InsuredValue
	a.Status = in.Status
}

func (s *ArtworkService) Create(ctx context.Context, in domain.ArtworkFields) (*domain.Artwork, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	a := &domain.Artwork{}
	apply(a, &in)
	if err := s.artworks.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.Get(ctx, a.ID)
}

// Update 未提供的必填字段（titel、外键、status）保留原值，其余字段整体替换
func (s *ArtworkService) Update(ctx context.Context, id uint, in domain.ArtworkFields) (*domain.Artwork, error) {
	a, err := s.artworks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFoundf("kunstwerk")
	}
	if strings.TrimSpace(in.Title) == "" {
		in.Title = a.Title
	}
	if in.ArtistID == 0 {
		in.ArtistID = a.ArtistID
	}
	if in.TypeID == 0 {
		in.TypeID = a.TypeID
	}
	if in.LocationID == 0 {
		in.LocationID = a.LocationID
	}
	if in.Status == "" {
		in.Status = a.Status
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	// 只保存标量字段，关联由 Get 重新加载
	row := domain.Artwork{ID: a.ID, CreatedAt: a.CreatedAt}
	apply(&row, &in)
	if err := s.artworks.Update(ctx, &row); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete 事务删除后再清理文件；文件删除失败不影响结果
func (s *ArtworkService) Delete(ctx context.Context, id uint) error {
	files, err := s.artworks.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(files.Images)+len(files.Attachments))
	for _, img := range files.Images {
		paths = append(paths, img.FilePath)
	}
	for _, att := range files.Attachments {
		paths = append(paths, att.FilePath)
	}
	removeFiles(s.store, s.log, paths...)
	s.log.Info("artwork deleted", zap.Uint("id", id), zap.Int("files", len(paths)))
	notify(ctx, s.events, s.log, events.ArtworkDeleted, map[string]any{"id": id, "bestanden": len(paths)})
	return nil
}
