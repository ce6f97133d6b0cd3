package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kunstcollectie/internal/domain"
)

type LocationRepo struct{ db *gorm.DB }

func NewLocationRepo(db *gorm.DB) *LocationRepo { return &LocationRepo{db: db} }

var _ domain.LocationRepository = (*LocationRepo)(nil)

func (r *LocationRepo) List(ctx context.Context, f domain.LocationFilter, p domain.Page) ([]domain.LocationSummary, int64, error) {
	q := whereContains(r.db.WithContext(ctx).Model(&domain.Location{}), "name", f.Name)
	if f.TypeID != 0 {
		q = q.Where("type_id = ?", f.TypeID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var locs []domain.Location
	if err := q.Preload("Type").Order("name ASC").Order("id ASC").Offset(p.Offset()).Limit(p.Limit).Find(&locs).Error; err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(locs))
	for i, l := range locs {
		ids[i] = l.ID
	}
	counts, err := artworkCounts(r.db.WithContext(ctx), "location_id", ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.LocationSummary, len(locs))
	for i, l := range locs {
		out[i] = domain.LocationSummary{Location: l, ArtworkCount: counts[l.ID]}
	}
	return out, total, nil
}

func (r *LocationRepo) Get(ctx context.Context, id uint) (*domain.LocationSummary, error) {
	var l domain.Location
	err := r.db.WithContext(ctx).Preload("Type").First(&l, "id = ?", id).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n, err := countArtworks(r.db.WithContext(ctx), "location_id", id)
	if err != nil {
		return nil, err
	}
	return &domain.LocationSummary{Location: l, ArtworkCount: n}, nil
}

func (r *LocationRepo) Create(ctx context.Context, l *domain.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *LocationRepo) Update(ctx context.Context, l *domain.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *LocationRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Location{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundf("locatie")
		}
		deps, err := countArtworks(tx, "location_id", id)
		if err != nil {
			return err
		}
		if deps > 0 {
			return &domain.ConflictError{Entity: "locatie", Dependent: "kunstwerken", Dependents: deps}
		}
		return tx.Delete(&domain.Location{}, "id = ?", id).Error
	})
}

func (r *LocationRepo) All(ctx context.Context) ([]domain.Location, error) {
	out := []domain.Location{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}
