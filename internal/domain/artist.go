package domain

import (
	"context"
	"time"
)

type Artist struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;index" json:"naam"`
	Address     string     `gorm:"size:255" json:"adres"`
	PostalCode  string     `gorm:"size:32" json:"postcode"`
	City        string     `gorm:"size:128" json:"plaats"`
	Country     string     `gorm:"size:128" json:"land"`
	Phone       string     `gorm:"size:64" json:"telefoon"`
	Email       string     `gorm:"size:191" json:"email"`
	Website     string     `gorm:"size:255" json:"website"`
	BirthDate   *time.Time `json:"geboortedatum"`
	DeathDate   *time.Time `json:"overlijdensdatum"`
	Biography   string     `gorm:"type:text" json:"biografie"`
	PortraitURL string     `gorm:"size:255" json:"portretfoto_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ArtistSummary 列表/详情附带作品数量
type ArtistSummary struct {
	Artist
	ArtworkCount int64 `json:"aantal_kunstwerken"`
}

type ArtistFields struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	Country    string
	Phone      string
	Email      string
	Website    string
	BirthDate  *time.Time
	DeathDate  *time.Time
	Biography  string
}

type ArtistFilter struct {
	Name    string
	Country string
}

type ArtistRepository interface {
	List(ctx context.Context, f ArtistFilter, p Page) ([]ArtistSummary, int64, error)
	Get(ctx context.Context, id uint) (*ArtistSummary, error)
	Create(ctx context.Context, a *Artist) error
	Update(ctx context.Context, a *Artist) error
	// Delete 有关联作品时返回 *ConflictError
	Delete(ctx context.Context, id uint) (*Artist, error)
	All(ctx context.Context) ([]Artist, error)
}
