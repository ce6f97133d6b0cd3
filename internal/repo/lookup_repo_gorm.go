package repo

import (
	"context"

	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

// LookupRepo 两张字典表共用，按 kind 选表
type LookupRepo struct{ db *gorm.DB }

func NewLookupRepo(db *gorm.DB) *LookupRepo { return &LookupRepo{db: db} }

var _ domain.LookupRepository = (*LookupRepo)(nil)

func (r *LookupRepo) table(ctx context.Context, kind domain.LookupKind) *gorm.DB {
	return r.db.WithContext(ctx).Table(kind.Table())
}

func (r *LookupRepo) List(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error) {
	out := []domain.Lookup{}
	err := r.table(ctx, kind).Order("name ASC").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *LookupRepo) Get(ctx context.Context, kind domain.LookupKind, id uint) (*domain.Lookup, error) {
	var l domain.Lookup
	err := r.table(ctx, kind).Where("id = ?", id).Take(&l).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &l, err
}

func (r *LookupRepo) FindByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	var l domain.Lookup
	err := r.table(ctx, kind).Where("name = ?", name).Take(&l).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &l, err
}

func (r *LookupRepo) Create(ctx context.Context, kind domain.LookupKind, l *domain.Lookup) error {
	return r.table(ctx, kind).Create(l).Error
}

func (r *LookupRepo) Update(ctx context.Context, kind domain.LookupKind, l *domain.Lookup) error {
	l.UpdatedAt = r.db.NowFunc()
	return r.table(ctx, kind).Where("id = ?", l.ID).
		Updates(map[string]any{"name": l.Name, "description": l.Description, "updated_at": l.UpdatedAt}).Error
}

// Delete 作品类型被作品引用、地点类型被地点引用时拒绝
func (r *LookupRepo) Delete(ctx context.Context, kind domain.LookupKind, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(kind.Table()).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundf("type")
		}
		var (
			deps      int64
			dependent string
			err       error
		)
		if kind == domain.KindLocationType {
			dependent = "locaties"
			err = tx.Model(&domain.Location{}).Where("type_id = ?", id).Count(&deps).Error
		} else {
			dependent = "kunstwerken"
			deps, err = countArtworks(tx, "type_id", id)
		}
		if err != nil {
			return err
		}
		if deps > 0 {
			return &domain.ConflictError{Entity: "type", Dependent: dependent, Dependents: deps}
		}
		return tx.Table(kind.Table()).Where("id = ?", id).Delete(&domain.Lookup{}).Error
	})
}
