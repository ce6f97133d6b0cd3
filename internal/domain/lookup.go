package domain

import (
	"context"
	"time"
)

// LookupKind 区分两类字典表：作品类型 / 地点类型
type LookupKind string

const (
	KindArtworkType  LookupKind = "kunstwerk"
	KindLocationType LookupKind = "locatie"
)

func (k LookupKind) Valid() bool { return k == KindArtworkType || k == KindLocationType }

func (k LookupKind) Table() string {
	if k == KindLocationType {
		return "location_types"
	}
	return "artwork_types"
}

type Lookup struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null;uniqueIndex" json:"naam"`
	Description string    `gorm:"type:text" json:"beschrijving"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ArtworkType struct{ Lookup }

type LocationType struct{ Lookup }

type LookupFields struct {
	Name        string
	Description string
}

type LookupRepository interface {
	List(ctx context.Context, kind LookupKind) ([]Lookup, error)
	Get(ctx context.Context, kind LookupKind, id uint) (*Lookup, error)
	FindByName(ctx context.Context, kind LookupKind, name string) (*Lookup, error)
	Create(ctx context.Context, kind LookupKind, l *Lookup) error
	Update(ctx context.Context, kind LookupKind, l *Lookup) error
	// Delete 被引用时返回 *ConflictError
	Delete(ctx context.Context, kind LookupKind, id uint) error
}
