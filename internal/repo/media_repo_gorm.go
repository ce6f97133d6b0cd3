package repo

import (
	"context"

	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

type MediaRepo struct{ db *gorm.DB }

func NewMediaRepo(db *gorm.DB) *MediaRepo { return &MediaRepo{db: db} }

var _ domain.MediaRepository = (*MediaRepo)(nil)

func (r *MediaRepo) CountImages(ctx context.Context, artworkID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Image{}).Where("artwork_id = ?", artworkID).Count(&n).Error
	return n, err
}

// AddImage 事务内：复核上限、分配 volgorde、维护唯一主图。
// 第一张图片总是主图。
func (r *MediaRepo) AddImage(ctx context.Context, img *domain.Image, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stats struct {
			Total    int64
			MaxOrder *int
		}
		if err := tx.Model(&domain.Image{}).
			Select("COUNT(*) AS total, MAX(sort_order) AS max_order").
			Where("artwork_id = ?", img.ArtworkID).
			Scan(&stats).Error; err != nil {
			return err
		}
		if stats.Total >= int64(limit) {
			return &domain.LimitExceededError{What: "afbeeldingen", Limit: limit}
		}
		img.SortOrder = 0
		if stats.MaxOrder != nil {
			img.SortOrder = *stats.MaxOrder + 1
		}
		if stats.Total == 0 {
			img.IsPrimary = true
		}
		if img.IsPrimary {
			if err := clearPrimary(tx, img.ArtworkID); err != nil {
				return err
			}
		}
		return tx.Create(img).Error
	})
}

func clearPrimary(tx *gorm.DB, artworkID uint) error {
	return tx.Model(&domain.Image{}).
		Where("artwork_id = ? AND is_primary = ?", artworkID, true).
		Update("is_primary", false).Error
}

func (r *MediaRepo) SetPrimary(ctx context.Context, artworkID, imageID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var img domain.Image
		if err := tx.First(&img, "id = ? AND artwork_id = ?", imageID, artworkID).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("afbeelding")
			}
			return err
		}
		if err := clearPrimary(tx, artworkID); err != nil {
			return err
		}
		return tx.Model(&domain.Image{}).Where("id = ?", imageID).Update("is_primary", true).Error
	})
}

// DeleteImage 删除主图后，volgorde 最小的剩余图片成为主图
func (r *MediaRepo) DeleteImage(ctx context.Context, artworkID, imageID uint) (*domain.Image, error) {
	var img domain.Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&img, "id = ? AND artwork_id = ?", imageID, artworkID).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("afbeelding")
			}
			return err
		}
		if err := tx.Delete(&domain.Image{}, "id = ?", imageID).Error; err != nil {
			return err
		}
		if !img.IsPrimary {
			return nil
		}
		var next domain.Image
		err := tx.Where("artwork_id = ?", artworkID).Order("sort_order ASC").Order("id ASC").First(&next).Error
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&domain.Image{}).Where("id = ?", next.ID).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *MediaRepo) AddAttachment(ctx context.Context, a *domain.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *MediaRepo) DeleteAttachment(ctx context.Context, artworkID, attachmentID uint) (*domain.Attachment, error) {
	var a domain.Attachment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ? AND artwork_id = ?", attachmentID, artworkID).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("bijlage")
			}
			return err
		}
		return tx.Delete(&domain.Attachment{}, "id = ?", attachmentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
