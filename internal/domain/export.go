package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type ReportType string

const (
	ReportOverview  ReportType = "overzicht"
	ReportValuation ReportType = "waardering"
	ReportArtist    ReportType = "kunstenaar"
	ReportLocation  ReportType = "locatie"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportOverview, ReportValuation, ReportArtist, ReportLocation:
		return true
	}
	return false
}

// ReportExport 导出审计记录
type ReportExport struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Type      ReportType     `gorm:"size:32;not null;index" json:"type"`
	Format    string         `gorm:"size:8;not null" json:"format"`
	FileName  string         `gorm:"size:255;not null" json:"bestandsnaam"`
	Filters   datatypes.JSON `json:"filters"`
	Fields    datatypes.JSON `json:"fields"`
	UserID    uint           `gorm:"index" json:"gebruiker_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

type ExportRepository interface {
	Record(ctx context.Context, e *ReportExport) error
	Recent(ctx context.Context, limit int) ([]ReportExport, error)
}
