package repo

import (
	"errors"
	"testing"

	"kunstcollectie/internal/domain"
)

func TestDeleteBlockedByArtworks(t *testing.T) {
	f := newFixture(t)
	f.artwork(t, "Zomer", 1)

	cases := map[string]func() error{
		"artist":   func() error { _, err := NewArtistRepo(f.db).Delete(f.ctx, f.artist.ID); return err },
		"location": func() error { return NewLocationRepo(f.db).Delete(f.ctx, f.location.ID) },
		"supplier": func() error { return NewSupplierRepo(f.db).Delete(f.ctx, f.supplier.ID) },
		"artwork type": func() error {
			return NewLookupRepo(f.db).Delete(f.ctx, domain.KindArtworkType, f.artType.ID)
		},
		"location type": func() error {
			return NewLookupRepo(f.db).Delete(f.ctx, domain.KindLocationType, f.locType.ID)
		},
	}
	for name, del := range cases {
		err := del()
		var ce *domain.ConflictError
		if !errors.As(err, &ce) || ce.Dependents != 1 {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestDeleteMissing(t *testing.T) {
	f := newFixture(t)
	if _, err := NewArtistRepo(f.db).Delete(f.ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("artist: %v", err)
	}
	if err := NewLocationRepo(f.db).Delete(f.ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("location: %v", err)
	}
	if err := NewLookupRepo(f.db).Delete(f.ctx, domain.KindArtworkType, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("lookup: %v", err)
	}
}

func TestArtistCounts(t *testing.T) {
	f := newFixture(t)
	f.artwork(t, "A", 1)
	f.artwork(t, "B", 1)
	other := &domain.Artist{Name: "Bram"}
	if err := NewArtistRepo(f.db).Create(f.ctx, other); err != nil {
		t.Fatal(err)
	}

	list, total, err := NewArtistRepo(f.db).List(f.ctx, domain.ArtistFilter{}, page(t, 1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || list[0].Name != "Anna de Vries" || list[0].ArtworkCount != 2 || list[1].ArtworkCount != 0 {
		t.Fatalf("list = %+v", list)
	}
	loc, err := NewLocationRepo(f.db).Get(f.ctx, f.location.ID)
	if err != nil || loc.ArtworkCount != 2 || loc.Type == nil {
		t.Fatalf("location = %+v, %v", loc, err)
	}
}

func TestLikeEscapesWildcards(t *testing.T) {
	f := newFixture(t)
	if err := NewSupplierRepo(f.db).Create(f.ctx, &domain.Supplier{Name: "100% Kunst"}); err != nil {
		t.Fatal(err)
	}
	items, total, err := NewSupplierRepo(f.db).List(f.ctx, domain.SupplierFilter{Name: "%"}, page(t, 1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || items[0].Name != "100% Kunst" {
		t.Fatalf("items = %+v", items)
	}
}

func TestSupplierNameUnique(t *testing.T) {
	f := newFixture(t)
	err := NewSupplierRepo(f.db).Create(f.ctx, &domain.Supplier{Name: "Galerie Noord"})
	if !IsDupKey(err) {
		t.Fatalf("err = %v", err)
	}
}

func TestLookupUpdate(t *testing.T) {
	f := newFixture(t)
	r := NewLookupRepo(f.db)
	l := &domain.Lookup{ID: f.artType.ID, Name: "Olieverf", Description: "doek"}
	if err := r.Update(f.ctx, domain.KindArtworkType, l); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(f.ctx, domain.KindArtworkType, f.artType.ID)
	if err != nil || got.Name != "Olieverf" || got.UpdatedAt.IsZero() {
		t.Fatalf("got = %+v, %v", got, err)
	}
	// 另一张表里不存在
	if other, _ := r.Get(f.ctx, domain.KindLocationType, 999); other != nil {
		t.Fatalf("unexpected %+v", other)
	}
}
