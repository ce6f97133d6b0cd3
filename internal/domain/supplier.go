package domain

import (
	"context"
	"time"
)

type Supplier struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null;uniqueIndex" json:"naam"`
	Address    string    `gorm:"size:255" json:"adres"`
	PostalCode string    `gorm:"size:32" json:"postcode"`
	City       string    `gorm:"size:128" json:"plaats"`
	Country    string    `gorm:"size:128" json:"land"`
	Phone      string    `gorm:"size:64" json:"telefoon"`
	Email      string    `gorm:"size:191" json:"email"`
	Website    string    `gorm:"size:255" json:"website"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SupplierFields struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	Country    string
	Phone      string
	Email      string
	Website    string
}

type SupplierFilter struct {
	Name string
}

type SupplierRepository interface {
	List(ctx context.Context, f SupplierFilter, p Page) ([]Supplier, int64, error)
	Get(ctx context.Context, id uint) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	Create(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
	// Delete 被作品引用时返回 *ConflictError
	Delete(ctx context.Context, id uint) error
	All(ctx context.Context) ([]Supplier, error)
}
