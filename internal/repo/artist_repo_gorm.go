package repo

import (
	"context"

	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

type ArtistRepo struct{ db *gorm.DB }

func NewArtistRepo(db *gorm.DB) *ArtistRepo { return &ArtistRepo{db: db} }

var _ domain.ArtistRepository = (*ArtistRepo)(nil)

func (r *ArtistRepo) List(ctx context.Context, f domain.ArtistFilter, p domain.Page) ([]domain.ArtistSummary, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Artist{})
	q = whereContains(q, "name", f.Name)
	q = whereContains(q, "country", f.Country)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var artists []domain.Artist
	if err := q.Order("name ASC").Order("id ASC").Offset(p.Offset()).Limit(p.Limit).Find(&artists).Error; err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(artists))
	for i, a := range artists {
		ids[i] = a.ID
	}
	counts, err := artworkCounts(r.db.WithContext(ctx), "artist_id", ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.ArtistSummary, len(artists))
	for i, a := range artists {
		out[i] = domain.ArtistSummary{Artist: a, ArtworkCount: counts[a.ID]}
	}
	return out, total, nil
}

func (r *ArtistRepo) Get(ctx context.Context, id uint) (*domain.ArtistSummary, error) {
	var a domain.Artist
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n, err := countArtworks(r.db.WithContext(ctx), "artist_id", id)
	if err != nil {
		return nil, err
	}
	return &domain.ArtistSummary{Artist: a, ArtworkCount: n}, nil
}

func (r *ArtistRepo) Create(ctx context.Context, a *domain.Artist) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ArtistRepo) Update(ctx context.Context, a *domain.Artist) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete 有作品引用时拒绝；返回被删记录供清理肖像文件
func (r *ArtistRepo) Delete(ctx context.Context, id uint) (*domain.Artist, error) {
	var a domain.Artist
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("kunstenaar")
			}
			return err
		}
		n, err := countArtworks(tx, "artist_id", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.ConflictError{Entity: "kunstenaar", Dependent: "kunstwerken", Dependents: n}
		}
		return tx.Delete(&domain.Artist{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtistRepo) All(ctx context.Context) ([]domain.Artist, error) {
	out := []domain.Artist{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// artworkCounts 批量统计，避免 N+1
func artworkCounts(db *gorm.DB, col string, ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	type row struct {
		ID    uint
		Total int64
	}
	var rows []row
	err := db.Model(&domain.Artwork{}).
		Select(col+" AS id, COUNT(*) AS total").
		Where(col+" IN ?", ids).
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.Total
	}
	return out, nil
}
