package repo

import (
	"context"

	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

type SupplierRepo struct{ db *gorm.DB }

func NewSupplierRepo(db *gorm.DB) *SupplierRepo { return &SupplierRepo{db: db} }

var _ domain.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) List(ctx context.Context, f domain.SupplierFilter, p domain.Page) ([]domain.Supplier, int64, error) {
	q := whereContains(r.db.WithContext(ctx).Model(&domain.Supplier{}), "name", f.Name)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []domain.Supplier{}
	if err := q.Order("name ASC").Order("id ASC").Offset(p.Offset()).Limit(p.Limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *SupplierRepo) Get(ctx context.Context, id uint) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &s, err
}

func (r *SupplierRepo) FindByName(ctx context.Context, name string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, "name = ?", name).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &s, err
}

func (r *SupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SupplierRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Supplier{}).Where("id = ?", id)
		var n int64
		if err := res.Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundf("leverancier")
		}
		deps, err := countArtworks(tx, "supplier_id", id)
		if err != nil {
			return err
		}
		if deps > 0 {
			return &domain.ConflictError{Entity: "leverancier", Dependent: "kunstwerken", Dependents: deps}
		}
		return tx.Delete(&domain.Supplier{}, "id = ?", id).Error
	})
}

func (r *SupplierRepo) All(ctx context.Context) ([]domain.Supplier, error) {
	out := []domain.Supplier{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}
