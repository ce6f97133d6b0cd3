package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"kunstcollectie/internal/domain"
)

func xlsx(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImportArtists(t *testing.T) {
	e := newEnv(t)
	body := xlsx(t,
		[]any{"Naam", "Land", "Geboortedatum"},
		[]any{"Piet Mondriaan", "Nederland", "1872-03-07"},
		[]any{"", "België", ""},
		[]any{"Foute Datum", "", "gisteren"},
		[]any{"", "", ""},
		[]any{"Karel Appel", "Nederland"},
	)
	res, err := e.imports.Import(e.ctx, ImportArtists, upload("kunstenaars.xlsx", body))
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported != 2 || res.Skipped != 2 {
		t.Fatalf("result = %+v", res)
	}
	page, err := e.artists.List(e.ctx, domain.ArtistFilter{}, firstPage(t))
	if err != nil || page.Pagination.Total != 2 {
		t.Fatalf("artists = %+v, %v", page.Pagination, err)
	}
}

func TestImportArtworksUsesValidation(t *testing.T) {
	e := newEnv(t)
	r := e.refs(t)
	id := func(n uint) string { return strconv.FormatUint(uint64(n), 10) }
	body := xlsx(t,
		[]any{"titel", "kunstenaar_id", "type_id", "locatie_id", "huidige_marktprijs"},
		[]any{"Zomer", id(r.artist.ID), id(r.artType.ID), id(r.location.ID), "2500,50"},
		[]any{"Spook", "999", id(r.artType.ID), id(r.location.ID), ""},
		[]any{"Negatief", id(r.artist.ID), id(r.artType.ID), id(r.location.ID), "-5"},
	)
	res, err := e.imports.Import(e.ctx, ImportArtworks, upload("werken.xlsx", body))
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported != 1 || res.Skipped != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestImportRejects(t *testing.T) {
	e := newEnv(t)
	if _, err := e.imports.Import(e.ctx, "gebruikers", upload("a.xlsx", xlsx(t))); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("kind: %v", err)
	}
	if _, err := e.imports.Import(e.ctx, ImportLocations, upload("a.csv", []byte("naam\nx\n"))); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("extension: %v", err)
	}
	if _, err := e.imports.Import(e.ctx, ImportLocations, upload("a.xlsx", pngBytes(t))); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("content: %v", err)
	}
}

func TestSeedIdempotent(t *testing.T) {
	e := newEnv(t)
	admin := SeedAdmin{Email: "admin@kunstcollectie.nl", Password: "geheim123"}
	for i := 0; i < 2; i++ {
		if err := e.seed.Seed(e.ctx, admin); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	art, _ := e.lookups.List(e.ctx, domain.KindArtworkType)
	loc, _ := e.lookups.List(e.ctx, domain.KindLocationType)
	if len(art) != len(seedArtworkTypes) || len(loc) != len(seedLocationTypes) {
		t.Fatalf("lookups = %d/%d", len(art), len(loc))
	}
	sp, err := e.suppliers.List(e.ctx, domain.SupplierFilter{}, firstPage(t))
	if err != nil || sp.Pagination.Total != int64(len(seedSuppliers)) {
		t.Fatalf("suppliers = %+v, %v", sp.Pagination, err)
	}
	s, err := e.auth.Authenticate(e.ctx, admin.Email, admin.Password)
	if err != nil || s.User.Role != domain.RoleAdmin || s.User.Name != "Admin Gebruiker" {
		t.Fatalf("admin login: %+v, %v", s, err)
	}
	if n, _ := e.users.CountAdmins(e.ctx); n != 1 {
		t.Fatalf("admins = %d", n)
	}

	// 未配置管理员时跳过
	if err := newEnv(t).seed.Seed(e.ctx, SeedAdmin{}); err != nil {
		t.Fatal(err)
	}
}

func TestValuesParsing(t *testing.T) {
	var raw map[string]any
	dec := json.NewDecoder(strings.NewReader(`{"titel":" Zomer ","kunstenaar_id":3,"hoogte":"12,5","is_editie":true,"leverancier_id":null,"aankoopdatum":"2020-05-01"}`))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		t.Fatal(err)
	}
	in, err := ValuesOf(raw).Artwork()
	if err != nil {
		t.Fatal(err)
	}
	if in.Title != "Zomer" || in.ArtistID != 3 || in.Height == nil || *in.Height != 12.5 || !in.IsEdition || in.SupplierID != nil {
		t.Fatalf("fields = %+v", in)
	}
	if in.PurchaseDate == nil || in.PurchaseDate.Year() != 2020 {
		t.Fatalf("date = %v", in.PurchaseDate)
	}

	_, err = Values{"kunstenaar_id": "drie", "hoogte": "hoog", "productiedatum": "ooit"}.Artwork()
	got := fieldsOf(t, err)
	if strings.Join(got, ",") != "kunstenaar_id,hoogte,productiedatum" {
		t.Fatalf("malformed = %v", got)
	}

	f, err := Values{"min_waarde": "100", "max_waarde": "1000.50"}.Report()
	if err != nil {
		t.Fatal(err)
	}
	if *f.MinValue != 100 || *f.MaxValue != 1000.5 {
		t.Fatalf("report filter = %v %v", *f.MinValue, *f.MaxValue)
	}
}
