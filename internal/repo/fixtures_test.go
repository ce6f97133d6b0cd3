package repo

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"kunstcollectie/internal/core/database/dbtest"
	"kunstcollectie/internal/domain"
)

type fixture struct {
	db       *gorm.DB
	ctx      context.Context
	artType  *domain.Lookup
	locType  *domain.Lookup
	artist   *domain.Artist
	location *domain.Location
	supplier *domain.Supplier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: dbtest.Open(t), ctx: context.Background()}
	lookups := NewLookupRepo(f.db)
	f.artType = &domain.Lookup{Name: "Schilderij"}
	if err := lookups.Create(f.ctx, domain.KindArtworkType, f.artType); err != nil {
		t.Fatal(err)
	}
	f.locType = &domain.Lookup{Name: "Kantoor"}
	if err := lookups.Create(f.ctx, domain.KindLocationType, f.locType); err != nil {
		t.Fatal(err)
	}
	f.artist = &domain.Artist{Name: "Anna de Vries"}
	if err := NewArtistRepo(f.db).Create(f.ctx, f.artist); err != nil {
		t.Fatal(err)
	}
	f.location = &domain.Location{
		Name: "Hoofdkantoor", Address: "Damrak 1", PostalCode: "1012 LG",
		City: "Amsterdam", Country: "Nederland", TypeID: f.locType.ID,
	}
	if err := NewLocationRepo(f.db).Create(f.ctx, f.location); err != nil {
		t.Fatal(err)
	}
	f.supplier = &domain.Supplier{Name: "Galerie Noord"}
	if err := NewSupplierRepo(f.db).Create(f.ctx, f.supplier); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) artwork(t *testing.T, title string, value float64) *domain.Artwork {
	t.Helper()
	a := &domain.Artwork{
		Title:       title,
		ArtistID:    f.artist.ID,
		TypeID:      f.artType.ID,
		LocationID:  f.location.ID,
		SupplierID:  &f.supplier.ID,
		MarketValue: &value,
		Status:      domain.StatusOwned,
	}
	if err := NewArtworkRepo(f.db).Create(f.ctx, a); err != nil {
		t.Fatal(err)
	}
	return a
}

func page(t *testing.T, p, limit int) domain.Page {
	t.Helper()
	pg, err := domain.NewPage(p, limit)
	if err != nil {
		t.Fatal(err)
	}
	return pg
}
