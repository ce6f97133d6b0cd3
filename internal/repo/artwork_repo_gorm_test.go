package repo

import (
	"errors"
	"fmt"
	"testing"

	"kunstcollectie/internal/domain"
)

func TestArtworkGetPreloads(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "Zomer", 3000)

	got, err := NewArtworkRepo(f.db).Get(f.ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Artist == nil || got.Artist.Name != "Anna de Vries" {
		t.Fatalf("artist not loaded: %+v", got.Artist)
	}
	if got.Type == nil || got.Type.Name != "Schilderij" {
		t.Fatalf("type not loaded: %+v", got.Type)
	}
	if got.Location == nil || got.Location.Type == nil || got.Location.Type.Name != "Kantoor" {
		t.Fatalf("location type not loaded: %+v", got.Location)
	}
	if got.Supplier == nil || got.Supplier.Name != "Galerie Noord" {
		t.Fatalf("supplier not loaded")
	}

	missing, err := NewArtworkRepo(f.db).Get(f.ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("missing = %v, %v", missing, err)
	}
}

func TestArtworkListPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		f.artwork(t, fmt.Sprintf("Werk %02d", i), float64(i))
	}
	r := NewArtworkRepo(f.db)

	seen := 0
	var pages int
	for p := 1; ; p++ {
		items, total, err := r.List(f.ctx, domain.ArtworkFilter{}, page(t, p, 3))
		if err != nil {
			t.Fatal(err)
		}
		if total != 7 {
			t.Fatalf("total = %d", total)
		}
		pages = domain.NewPagination(total, page(t, p, 3)).Pages
		seen += len(items)
		if p >= pages {
			break
		}
	}
	if pages != 3 || seen != 7 {
		t.Fatalf("pages = %d, seen = %d", pages, seen)
	}

	items, total, err := r.List(f.ctx, domain.ArtworkFilter{Title: "werk 0"}, page(t, 1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if total != 7 || len(items) != 7 {
		t.Fatalf("title filter: total=%d len=%d", total, len(items))
	}
	_, total, _ = r.List(f.ctx, domain.ArtworkFilter{Status: domain.StatusSold}, page(t, 1, 10))
	if total != 0 {
		t.Fatalf("status filter: total=%d", total)
	}
}

func TestArtworkDeleteCascade(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "Zomer", 3000)
	media := NewMediaRepo(f.db)
	for i := 0; i < 2; i++ {
		img := &domain.Image{ArtworkID: a.ID, FileName: "x.jpg", FilePath: fmt.Sprintf("uploads/kunstwerken/%d.jpg", i)}
		if err := media.AddImage(f.ctx, img, domain.MaxImagesPerArtwork); err != nil {
			t.Fatal(err)
		}
	}
	att := &domain.Attachment{ArtworkID: a.ID, FileName: "c.pdf", FilePath: "uploads/bijlagen/c.pdf", Kind: domain.AttachmentPDF}
	if err := media.AddAttachment(f.ctx, att); err != nil {
		t.Fatal(err)
	}

	r := NewArtworkRepo(f.db)
	files, err := r.DeleteCascade(f.ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(files.Images) != 2 || len(files.Attachments) != 1 {
		t.Fatalf("files = %+v", files)
	}
	var n int64
	f.db.Model(&domain.Image{}).Where("artwork_id = ?", a.ID).Count(&n)
	if n != 0 {
		t.Fatalf("%d images left", n)
	}
	if ok, _ := r.Exists(f.ctx, a.ID); ok {
		t.Fatal("artwork still exists")
	}
	if _, err := r.DeleteCascade(f.ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestArtworkForReportFilters(t *testing.T) {
	f := newFixture(t)
	f.artwork(t, "B", 4000)
	f.artwork(t, "A", 3000)
	f.artwork(t, "C", 100)

	min, max := 1000.0, 5000.0
	items, err := NewArtworkRepo(f.db).ForReport(f.ctx, domain.ReportFilter{ArtistID: f.artist.ID, MinValue: &min, MaxValue: &max})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Title != "A" || items[1].Title != "B" {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Artist == nil {
		t.Fatal("artist not preloaded")
	}
}
