package repo

import (
	"context"

	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

type ExportRepo struct{ db *gorm.DB }

func NewExportRepo(db *gorm.DB) *ExportRepo { return &ExportRepo{db: db} }

var _ domain.ExportRepository = (*ExportRepo)(nil)

func (r *ExportRepo) Record(ctx context.Context, e *domain.ReportExport) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExportRepo) Recent(ctx context.Context, limit int) ([]domain.ReportExport, error) {
	out := []domain.ReportExport{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}
