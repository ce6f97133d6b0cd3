package domain

import (
	"context"
	"time"
)

type Location struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Name       string        `gorm:"size:255;not null;index" json:"naam"`
	Address    string        `gorm:"size:255;not null" json:"adres"`
	PostalCode string        `gorm:"size:32;not null" json:"postcode"`
	City       string        `gorm:"size:128;not null" json:"plaats"`
	Country    string        `gorm:"size:128;not null" json:"land"`
	TypeID     uint          `gorm:"not null;index" json:"type_id"`
	Type       *LocationType `json:"locatie_type,omitempty"`
	Latitude   *float64      `json:"latitude"`
	Longitude  *float64      `json:"longitude"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type LocationSummary struct {
	Location
	ArtworkCount int64 `json:"aantal_kunstwerken"`
}

type LocationFields struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	Country    string
	TypeID     uint
	Latitude   *float64
	Longitude  *float64
}

type LocationFilter struct {
	Name   string
	TypeID uint
}

type LocationRepository interface {
	List(ctx context.Context, f LocationFilter, p Page) ([]LocationSummary, int64, error)
	Get(ctx context.Context, id uint) (*LocationSummary, error)
	Create(ctx context.Context, l *Location) error
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id uint) error
	All(ctx context.Context) ([]Location, error)
}
