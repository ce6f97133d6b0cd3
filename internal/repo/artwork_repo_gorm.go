package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kunstcollectie/internal/domain"
)

type ArtworkRepo struct{ db *gorm.DB }

func NewArtworkRepo(db *gorm.DB) *ArtworkRepo { return &ArtworkRepo{db: db} }

var _ domain.ArtworkRepository = (*ArtworkRepo)(nil)

func applyArtworkFilter(q *gorm.DB, f domain.ArtworkFilter) *gorm.DB {
	q = whereContains(q, "title", f.Title)
	if f.ArtistID != 0 {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if f.TypeID != 0 {
		q = q.Where("type_id = ?", f.TypeID)
	}
	if f.LocationID != 0 {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.SupplierID != 0 {
		q = q.Where("supplier_id = ?", f.SupplierID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ArtworkRepo) List(ctx context.Context, f domain.ArtworkFilter, p domain.Page) ([]domain.Artwork, int64, error) {
	q := applyArtworkFilter(r.db.WithContext(ctx).Model(&domain.Artwork{}), f)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []domain.Artwork{}
	err := q.
		Preload("Artist").
		Preload("Type").
		Preload("Location").
		Preload("Images", "is_primary = ?", true).
		Order("title ASC").Order("id ASC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ArtworkRepo) Get(ctx context.Context, id uint) (*domain.Artwork, error) {
	var a domain.Artwork
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Type").
		Preload("Location").
		Preload("Location.Type").
		Preload("Supplier").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC").Order("sort_order ASC").Order("id ASC")
		}).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&a, "id = ?", id).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &a, err
}

func (r *ArtworkRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Artwork{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ArtworkRepo) Create(ctx context.Context, a *domain.Artwork) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *ArtworkRepo) Update(ctx context.Context, a *domain.Artwork) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

// DeleteCascade 图片、附件、作品在同一事务内删除；文件由调用方事后清理
func (r *ArtworkRepo) DeleteCascade(ctx context.Context, id uint) (*domain.ArtworkFiles, error) {
	files := &domain.ArtworkFiles{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a domain.Artwork
		if err := tx.Select("id").First(&a, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("kunstwerk")
			}
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Find(&files.Images).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Find(&files.Attachments).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Artwork{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *ArtworkRepo) ForReport(ctx context.Context, f domain.ReportFilter) ([]domain.Artwork, error) {
	q := r.db.WithContext(ctx).Model(&domain.Artwork{})
	if f.ArtistID != 0 {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if f.TypeID != 0 {
		q = q.Where("type_id = ?", f.TypeID)
	}
	if f.LocationID != 0 {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.MinValue != nil {
		q = q.Where("market_value >= ?", *f.MinValue)
	}
	if f.MaxValue != nil {
		q = q.Where("market_value <= ?", *f.MaxValue)
	}
	items := []domain.Artwork{}
	err := q.
		Preload("Artist").
		Preload("Type").
		Preload("Location").
		Order("title ASC").Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *ArtworkRepo) All(ctx context.Context) ([]domain.Artwork, error) {
	items := []domain.Artwork{}
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Attachments").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// countArtworks 统计引用某外键的作品数（删除保护）
func countArtworks(tx *gorm.DB, col string, id uint) (int64, error) {
	var n int64
	err := tx.Model(&domain.Artwork{}).Where(col+" = ?", id).Count(&n).Error
	return n, err
}
