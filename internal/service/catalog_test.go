package service

import (
	"errors"
	"path"
	"testing"
	"time"

	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
	return ve.Fields
}

func TestArtworkCreateValidation(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)

	if got := fieldsOf(t, func() error { _, err := e.artworks.Create(e.ctx, domain.ArtworkFields{}); return err }()); len(got) != 4 {
		t.Fatalf("missing fields = %v", got)
	}

	base := domain.ArtworkFields{Title: "Zomer", ArtistID: r.artist.ID, TypeID: r.artType.ID, LocationID: r.location.ID}

	in := base
	in.Status = "gestolen"
	if got := fieldsOf(t, func() error { _, err := e.artworks.Create(e.ctx, in); return err }()); got[0] != "status" {
		t.Fatalf("status: %v", got)
	}

	in = base
	in.Height = ptr(-1.0)
	if got := fieldsOf(t, func() error { _, err := e.artworks.Create(e.ctx, in); return err }()); got[0] != "hoogte" {
		t.Fatalf("negative: %v", got)
	}

	in = base
	in.ArtistID = 999
	in.SupplierID = ptr(uint(999))
	got := fieldsOf(t, func() error { _, err := e.artworks.Create(e.ctx, in); return err }())
	if len(got) != 2 || got[0] != "kunstenaar_id" || got[1] != "leverancier_id" {
		t.Fatalf("refs: %v", got)
	}

	a, err := e.artworks.Create(e.ctx, base)
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != domain.StatusOwned || a.Artist == nil || a.Artist.Name != "Anna de Vries" {
		t.Fatalf("created = %+v", a)
	}
}

func TestArtworkUpdateKeepsRequired(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)
	a := e.artwork(t, r, "Zomer", 1000)

	up, err := e.artworks.Update(e.ctx, a.ID, domain.ArtworkFields{Status: domain.StatusLoaned, Description: "In bruikleen"})
	if err != nil {
		t.Fatal(err)
	}
	if up.Title != "Zomer" || up.ArtistID != r.artist.ID || up.Status != domain.StatusLoaned {
		t.Fatalf("updated = %+v", up)
	}
	if up.MarketValue != nil {
		t.Fatalf("optional fields are replaced, got market value %v", *up.MarketValue)
	}
	if _, err := e.artworks.Update(e.ctx, 999, domain.ArtworkFields{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}
}

func TestArtworkDeleteRemovesFiles(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)
	a := e.artwork(t, r, "Zomer", 1000)

	img, err := e.media.AddImage(e.ctx, a.ID, upload("zomer.png", pngBytes(t)), false)
	if err != nil {
		t.Fatal(err)
	}
	if !img.IsPrimary || !e.store.Exists(img.FilePath) {
		t.Fatalf("image = %+v", img)
	}

	if err := e.artworks.Delete(e.ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if e.store.Exists(img.FilePath) {
		t.Fatal("image file left behind")
	}
	if keys := e.events.Keys(); len(keys) != 1 || keys[0] != events.ArtworkDeleted {
		t.Fatalf("events = %v", keys)
	}
	if _, err := e.artworks.Get(e.ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}

func TestMediaService(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)
	a := e.artwork(t, r, "Zomer", 1000)

	if _, err := e.media.AddImage(e.ctx, 999, upload("a.png", pngBytes(t)), false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown artwork: %v", err)
	}
	if _, err := e.media.AddImage(e.ctx, a.ID, upload("a.jpg", []byte("geen afbeelding")), false); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("wrong content: %v", err)
	}

	first, err := e.media.AddImage(e.ctx, a.ID, upload(`C:\fotos\eerste.png`, pngBytes(t)), false)
	if err != nil {
		t.Fatal(err)
	}
	if first.FileName != "eerste.png" {
		t.Fatalf("display name = %q", first.FileName)
	}
	second, err := e.media.AddImage(e.ctx, a.ID, upload("tweede.png", pngBytes(t)), true)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.media.SetPrimaryImage(e.ctx, a.ID, first.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.media.DeleteImage(e.ctx, a.ID, second.ID); err != nil {
		t.Fatal(err)
	}
	if e.store.Exists(second.FilePath) {
		t.Fatal("deleted image still on disk")
	}

	pdf := []byte("%PDF-1.4\n%%EOF\n")
	att, err := e.media.AddAttachment(e.ctx, a.ID, upload("certificaat.pdf", pdf), "  echtheid ")
	if err != nil {
		t.Fatal(err)
	}
	if att.Kind != "PDF" || att.Description != "echtheid" {
		t.Fatalf("attachment = %+v", att)
	}
	wantURL := domain.AttachmentURLPrefix + path.Base(att.FilePath)
	if att.DownloadURL != wantURL {
		t.Fatalf("download url = %q, want %q", att.DownloadURL, wantURL)
	}
	full, err := e.artworks.Get(e.ctx, a.ID)
	if err != nil || len(full.Attachments) != 1 || full.Attachments[0].DownloadURL != wantURL {
		t.Fatalf("preloaded attachments = %+v, %v", full, err)
	}
	if err := e.media.DeleteAttachment(e.ctx, a.ID, att.ID); err != nil {
		t.Fatal(err)
	}
	if e.store.Exists(att.FilePath) {
		t.Fatal("attachment file left behind")
	}
}

func TestArtistService(t *testing.T) {
	e := newEnv(t)

	born := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	died := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.artists.Create(e.ctx, domain.ArtistFields{Name: "X", BirthDate: &born, DeathDate: &died})
	if got := fieldsOf(t, err); got[0] != "overlijdensdatum" {
		t.Fatalf("dates: %v", got)
	}
	_, err = e.artists.Create(e.ctx, domain.ArtistFields{Name: "X", Website: "http://"})
	if got := fieldsOf(t, err); got[0] != "website" {
		t.Fatalf("website: %v", got)
	}

	a, err := e.artists.Create(e.ctx, domain.ArtistFields{Name: " Karel Appel ", Website: "www.appel.nl"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "Karel Appel" {
		t.Fatalf("name = %q", a.Name)
	}

	p1, err := e.artists.SetPortrait(e.ctx, a.ID, upload("p.png", pngBytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := e.artists.SetPortrait(e.ctx, a.ID, upload("p.png", pngBytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	if e.store.Exists(p1.PortraitURL) || !e.store.Exists(p2.PortraitURL) {
		t.Fatal("old portrait must be replaced")
	}

	up, err := e.artists.Update(e.ctx, a.ID, domain.ArtistFields{Country: "Nederland"})
	if err != nil {
		t.Fatal(err)
	}
	if up.Name != "Karel Appel" || up.Country != "Nederland" {
		t.Fatalf("update = %+v", up)
	}
	if err := e.artists.Delete(e.ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if e.store.Exists(p2.PortraitURL) {
		t.Fatal("portrait left behind")
	}
}

func TestArtistDeleteBlocked(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)
	e.artwork(t, r, "Zomer", 1000)

	err := e.artists.Delete(e.ctx, r.artist.ID)
	var ce *domain.ConflictError
	if !errors.As(err, &ce) || ce.Dependents != 1 {
		t.Fatalf("err = %v", err)
	}
}

func TestLocationValidation(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)
	base := domain.LocationFields{Name: "Depot", Address: "Weg 1", PostalCode: "1000 AA", City: "Utrecht", Country: "Nederland", TypeID: r.locType.ID}

	in := base
	in.Latitude = ptr(91.0)
	if got := fieldsOf(t, func() error { _, err := e.locations.Create(e.ctx, in); return err }()); got[0] != "latitude" {
		t.Fatalf("lat: %v", got)
	}
	in = base
	in.Longitude = ptr(-180.5)
	if got := fieldsOf(t, func() error { _, err := e.locations.Create(e.ctx, in); return err }()); got[0] != "longitude" {
		t.Fatalf("long: %v", got)
	}
	in = base
	in.TypeID = r.artType.ID + 100
	if got := fieldsOf(t, func() error { _, err := e.locations.Create(e.ctx, in); return err }()); got[0] != "type_id" {
		t.Fatalf("type: %v", got)
	}

	in = base
	in.Latitude, in.Longitude = ptr(52.09), ptr(5.12)
	l, err := e.locations.Create(e.ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	page, err := e.locations.Artworks(e.ctx, l.ID, firstPage(t))
	if err != nil || page.Pagination.Total != 0 {
		t.Fatalf("artworks: %+v %v", page.Pagination, err)
	}
}

func TestSupplierNameUnique(t *testing.T) {
	e := newEnv(t)
	a, err := e.suppliers.Create(e.ctx, domain.SupplierFields{Name: "Galerie Noord"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.suppliers.Create(e.ctx, domain.SupplierFields{Name: "  Galerie Noord "}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate: %v", err)
	}
	b, err := e.suppliers.Create(e.ctx, domain.SupplierFields{Name: "Galerie Zuid"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.suppliers.Update(e.ctx, b.ID, domain.SupplierFields{Name: "Galerie Noord"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("rename onto existing: %v", err)
	}
	if _, err := e.suppliers.Update(e.ctx, a.ID, domain.SupplierFields{Name: "Galerie Noord", City: "Groningen"}); err != nil {
		t.Fatalf("update self: %v", err)
	}
}

func TestLookupService(t *testing.T) {
	e := newEnv(t)
	if _, err := e.lookups.List(e.ctx, "onbekend"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown kind: %v", err)
	}
	l, err := e.lookups.Create(e.ctx, domain.KindArtworkType, domain.LookupFields{Name: "Sculptuur"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.lookups.Create(e.ctx, domain.KindArtworkType, domain.LookupFields{Name: "Sculptuur"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate: %v", err)
	}
	// 两类字典表互不影响
	if _, err := e.lookups.Create(e.ctx, domain.KindLocationType, domain.LookupFields{Name: "Sculptuur"}); err != nil {
		t.Fatalf("other kind: %v", err)
	}
	list, err := e.lookups.List(e.ctx, domain.KindArtworkType)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
	if err := e.lookups.Delete(e.ctx, domain.KindArtworkType, l.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.lookups.Get(e.ctx, domain.KindArtworkType, l.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted: %v", err)
	}
}
