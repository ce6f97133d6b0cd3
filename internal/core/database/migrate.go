package database

import (
	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

// Models 按依赖顺序排列，字典表在前
func Models() []any {
	return []any{
		&domain.ArtworkType{},
		&domain.LocationType{},
		&domain.Supplier{},
		&domain.Artist{},
		&domain.Location{},
		&domain.Artwork{},
		&domain.Image{},
		&domain.Attachment{},
		&domain.User{},
		&domain.ReportExport{},
	}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
