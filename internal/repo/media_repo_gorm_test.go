package repo

import (
	"errors"
	"testing"

	"kunstcollectie/internal/domain"
)

func primaries(t *testing.T, f *fixture, artworkID uint) []domain.Image {
	t.Helper()
	var out []domain.Image
	if err := f.db.Where("artwork_id = ? AND is_primary = ?", artworkID, true).Find(&out).Error; err != nil {
		t.Fatal(err)
	}
	return out
}

func addImage(t *testing.T, f *fixture, artworkID uint, primary bool) *domain.Image {
	t.Helper()
	img := &domain.Image{ArtworkID: artworkID, FileName: "x.jpg", FilePath: "uploads/kunstwerken/x.jpg", IsPrimary: primary}
	if err := NewMediaRepo(f.db).AddImage(f.ctx, img, domain.MaxImagesPerArtwork); err != nil {
		t.Fatal(err)
	}
	return img
}

func TestFirstImageBecomesPrimary(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "Zomer", 1)
	first := addImage(t, f, a.ID, false)
	second := addImage(t, f, a.ID, false)

	if !first.IsPrimary || second.IsPrimary {
		t.Fatalf("first=%v second=%v", first.IsPrimary, second.IsPrimary)
	}
	if second.SortOrder != first.SortOrder+1 {
		t.Fatalf("sort order %d -> %d", first.SortOrder, second.SortOrder)
	}
}

func TestPrimaryIsUnique(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "Zomer", 1)
	addImage(t, f, a.ID, false)
	b := addImage(t, f, a.ID, true)

	p := primaries(t, f, a.ID)
	if len(p) != 1 || p[0].ID != b.ID {
		t.Fatalf("primaries = %+v", p)
	}

	c := addImage(t, f, a.ID, false)
	if err := NewMediaRepo(f.db).SetPrimary(f.ctx, a.ID, c.ID); err != nil {
		t.Fatal(err)
	}
	p = primaries(t, f, a.ID)
	if len(p) != 1 || p[0].ID != c.ID {
		t.Fatalf("after SetPrimary = %+v", p)
	}
}

func TestDeletePrimaryPromotesNext(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "Zomer", 1)
	first := addImage(t, f, a.ID, false)
	second := addImage(t, f, a.ID, false)
	addImage(t, f, a.ID, false)

	media := NewMediaRepo(f.db)
	if _, err := media.DeleteImage(f.ctx, a.ID, first.ID); err != nil {
		t.Fatal(err)
	}
	p := primaries(t, f, a.ID)
	if len(p) != 1 || p[0].ID != second.ID {
		t.Fatalf("primaries = %+v", p)
	}
}

func TestImageLimit(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "Zomer", 1)
	media := NewMediaRepo(f.db)
	for i := 0; i < 2; i++ {
		if err := media.AddImage(f.ctx, &domain.Image{ArtworkID: a.ID, FileName: "x", FilePath: "p"}, 2); err != nil {
			t.Fatal(err)
		}
	}
	err := media.AddImage(f.ctx, &domain.Image{ArtworkID: a.ID, FileName: "x", FilePath: "p"}, 2)
	if !errors.Is(err, domain.ErrLimitExceeded) {
		t.Fatalf("err = %v", err)
	}
}

func TestMediaWrongArtwork(t *testing.T) {
	f := newFixture(t)
	a := f.artwork(t, "A", 1)
	b := f.artwork(t, "B", 1)
	img := addImage(t, f, a.ID, false)

	media := NewMediaRepo(f.db)
	if err := media.SetPrimary(f.ctx, b.ID, img.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("SetPrimary: %v", err)
	}
	if _, err := media.DeleteImage(f.ctx, b.ID, img.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteImage: %v", err)
	}
	if _, err := media.DeleteAttachment(f.ctx, a.ID, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteAttachment: %v", err)
	}
}
