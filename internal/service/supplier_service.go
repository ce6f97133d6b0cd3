package service

import (
	"context"
	"fmt"
	"strings"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/repo"
)

var errSupplierTaken = fmt.Errorf("%w: supplier name already in use", domain.ErrConflict)

type SupplierService struct {
	suppliers domain.SupplierRepository
}

func NewSupplierService(suppliers domain.SupplierRepository) *SupplierService {
	return &SupplierService{suppliers: suppliers}
}

func (s *SupplierService) List(ctx context.Context, f domain.SupplierFilter, p domain.Page) (domain.Paged[domain.Supplier], error) {
	items, total, err := s.suppliers.List(ctx, f, p)
	if err != nil {
		return domain.Paged[domain.Supplier]{}, err
	}
	return domain.Paged[domain.Supplier]{Items: items, Pagination: domain.NewPagination(total, p)}, nil
}

func (s *SupplierService) Get(ctx context.Context, id uint) (*domain.Supplier, error) {
	sp, err := s.suppliers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.NotFoundf("leverancier")
	}
	return sp, nil
}

func applySupplier(sp *domain.Supplier, in *domain.SupplierFields) {
	sp.Name = in.Name
	sp.Address = in.Address
	sp.PostalCode = in.PostalCode
	sp.City = in.City
	sp.Country = in.Country
	sp.Phone = in.Phone
	sp.Email = in.Email
	sp.Website = in.Website
}

// checkName 名称唯一（不区分首尾空白）；exceptID 为更新中的记录
func (s *SupplierService) checkName(ctx context.Context, name string, exceptID uint) error {
	other, err := s.suppliers.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != exceptID {
		return errSupplierTaken
	}
	return nil
}

func (s *SupplierService) Create(ctx context.Context, in domain.SupplierFields) (*domain.Supplier, error) {
	in.Name = strings.TrimSpace(in.Name)
	var m missing
	m.str("naam", in.Name)
	if err := m.err(); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	sp := &domain.Supplier{}
	applySupplier(sp, &in)
	if err := s.suppliers.Create(ctx, sp); err != nil {
		if repo.IsDupKey(err) {
			return nil, errSupplierTaken
		}
		return nil, err
	}
	return sp, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, in domain.SupplierFields) (*domain.Supplier, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = sp.Name
	}
	if err := s.checkName(ctx, in.Name, id); err != nil {
		return nil, err
	}
	applySupplier(sp, &in)
	if err := s.suppliers.Update(ctx, sp); err != nil {
		if repo.IsDupKey(err) {
			return nil, errSupplierTaken
		}
		return nil, err
	}
	return sp, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	return s.suppliers.Delete(ctx, id)
}
