package domain

import (
	"context"
	"time"
)

type ArtworkStatus string

const (
	StatusOwned  ArtworkStatus = "in bezit"
	StatusSold   ArtworkStatus = "verkocht"
	StatusLoaned ArtworkStatus = "uitgeleend"
)

func (s ArtworkStatus) Valid() bool {
	switch s {
	case StatusOwned, StatusSold, StatusLoaned:
		return true
	}
	return false
}

// MaxImagesPerArtwork 每件作品最多图片数
const MaxImagesPerArtwork = 15

type Artwork struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:255;not null;index" json:"titel"`

	ArtistID   uint         `gorm:"not null;index" json:"kunstenaar_id"`
	Artist     *Artist      `json:"kunstenaar,omitempty"`
	TypeID     uint         `gorm:"not null;index" json:"type_id"`
	Type       *ArtworkType `json:"kunstwerk_type,omitempty"`
	LocationID uint         `gorm:"not null;index" json:"locatie_id"`
	Location   *Location    `json:"locatie,omitempty"`
	SupplierID *uint        `gorm:"index" json:"leverancier_id"`
	Supplier   *Supplier    `json:"leverancier,omitempty"`

	Height *float64 `json:"hoogte"`
	Width  *float64 `json:"breedte"`
	Depth  *float64 `json:"diepte"`
	Weight *float64 `json:"gewicht"`

	ProductionDate     *time.Time `json:"productiedatum"`
	IsEstimatedDate    bool       `gorm:"not null;default:false" json:"is_schatting_datum"`
	IsEdition          bool       `gorm:"not null;default:false" json:"is_editie"`
	EditionDescription string     `gorm:"size:255" json:"editie_beschrijving"`
	IsSigned           bool       `gorm:"not null;default:false" json:"is_gesigneerd"`
	SignatureLocation  string     `gorm:"size:255" json:"handtekening_locatie"`
	Description        string     `gorm:"type:text" json:"beschrijving"`

	PurchaseDate  *time.Time    `json:"aankoopdatum"`
	PurchasePrice *float64      `json:"aankoopprijs"`
	MarketValue   *float64      `json:"huidige_marktprijs"`
	InsuredValue  *float64      `json:"verzekerde_waarde"`
	Status        ArtworkStatus `gorm:"size:32;not null;default:'in bezit'" json:"status"`

	Images      []Image      `json:"afbeeldingen,omitempty"`
	Attachments []Attachment `json:"bijlagen,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtworkFields 创建/更新时可写字段（已在边界完成解析）
type ArtworkFields struct {
	Title      string
	ArtistID   uint
	TypeID     uint
	LocationID uint
	SupplierID *uint

	Height, Width, Depth, Weight *float64

	ProductionDate     *time.Time
	IsEstimatedDate    bool
	IsEdition          bool
	EditionDescription string
	IsSigned           bool
	SignatureLocation  string
	Description        string

	PurchaseDate  *time.Time
	PurchasePrice *float64
	MarketValue   *float64
	InsuredValue  *float64
	Status        ArtworkStatus
}

type ArtworkFilter struct {
	Title      string
	ArtistID   uint
	TypeID     uint
	LocationID uint
	SupplierID uint
	Status     ArtworkStatus
}

// ReportFilter 报表筛选；MinValue/MaxValue 作用于 huidige_marktprijs
type ReportFilter struct {
	ArtistID   uint     `json:"kunstenaar_id,omitempty"`
	TypeID     uint     `json:"type_id,omitempty"`
	LocationID uint     `json:"locatie_id,omitempty"`
	MinValue   *float64 `json:"min_waarde,omitempty"`
	MaxValue   *float64 `json:"max_waarde,omitempty"`
}

// ArtworkFiles 级联删除后需要清理的文件
type ArtworkFiles struct {
	Images      []Image
	Attachments []Attachment
}

type ArtworkRepository interface {
	// List 只带主图
	List(ctx context.Context, f ArtworkFilter, p Page) ([]Artwork, int64, error)
	// Get 带全部关联，图片按主图优先、volgorde 升序
	Get(ctx context.Context, id uint) (*Artwork, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, a *Artwork) error
	Update(ctx context.Context, a *Artwork) error
	// DeleteCascade 单事务删除图片、附件与作品本身
	DeleteCascade(ctx context.Context, id uint) (*ArtworkFiles, error)
	// ForReport 预加载 artist/type/location，按 titel 升序
	ForReport(ctx context.Context, f ReportFilter) ([]Artwork, error)
	All(ctx context.Context) ([]Artwork, error)
}
