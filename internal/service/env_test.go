package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"kunstcollectie/internal/core/auth"
	"kunstcollectie/internal/core/cache"
	"kunstcollectie/internal/core/database/dbtest"
	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/repo"
)

// env 每个测试一套内存 DB + 内存文件系统
type env struct {
	ctx    context.Context
	fs     afero.Fs
	store  *storage.Store
	events *events.Recorder
	jwt    *auth.JWTer

	users     *repo.UserRepo
	exportsDB *repo.ExportRepo

	auth      *AuthService
	userSvc   *UserService
	artworks  *ArtworkService
	media     *MediaService
	artists   *ArtistService
	locations *LocationService
	suppliers *SupplierService
	lookups   *LookupService
	reports   *ReportService
	exports   *ExportService
	imports   *ImportService
	backups   *BackupService
	seed      *SeedService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.Open(t)
	log := zap.NewNop()
	e := &env{
		ctx:    context.Background(),
		fs:     afero.NewMemMapFs(),
		events: &events.Recorder{},
		jwt:    &auth.JWTer{Secret: []byte("test"), Issuer: "test", TTL: time.Hour, Denylist: auth.NewMemoryDenylist()},
	}
	e.store = storage.New(e.fs, "uploads")

	e.users = repo.NewUserRepo(db)
	e.exportsDB = repo.NewExportRepo(db)
	artworks := repo.NewArtworkRepo(db)
	artists := repo.NewArtistRepo(db)
	locations := repo.NewLocationRepo(db)
	suppliers := repo.NewSupplierRepo(db)
	lookups := repo.NewLookupRepo(db)
	media := repo.NewMediaRepo(db)

	images := ImagePolicy(1 << 20)
	e.auth = NewAuthService(e.users, e.jwt, log)
	e.userSvc = NewUserService(e.users, 4, log)
	e.artworks = NewArtworkService(artworks, artists, locations, suppliers, lookups, e.store, e.events, log)
	e.media = NewMediaService(artworks, media, e.store, images, AttachmentPolicy(1<<20), log)
	e.artists = NewArtistService(artists, artworks, e.store, images, log)
	e.locations = NewLocationService(locations, artworks, lookups)
	e.suppliers = NewSupplierService(suppliers)
	e.lookups = NewLookupService(lookups, cache.New("", "", 0), log)
	e.reports = NewReportService(artworks, artists, locations)
	e.exports = NewExportService(e.reports, e.exportsDB, e.store, e.events, time.Minute, log)
	e.imports = NewImportService(e.artworks, e.artists, e.locations, SpreadsheetPolicy(1<<20), log)
	e.backups = NewBackupService(artworks, artists, locations, suppliers, lookups, e.store, e.events, log)
	e.seed = NewSeedService(lookups, suppliers, e.users, 4, log)
	return e
}

// refs 一组可被作品引用的基础数据
type refs struct {
	artType  *domain.Lookup
	locType  *domain.Lookup
	artist   *domain.ArtistSummary
	location *domain.LocationSummary
}

func (e *env) refs(t *testing.T) refs {
	t.Helper()
	var r refs
	var err error
	if r.artType, err = e.lookups.Create(e.ctx, domain.KindArtworkType, domain.LookupFields{Name: "Schilderij"}); err != nil {
		t.Fatal(err)
	}
	if r.locType, err = e.lookups.Create(e.ctx, domain.KindLocationType, domain.LookupFields{Name: "Kantoor"}); err != nil {
		t.Fatal(err)
	}
	if r.artist, err = e.artists.Create(e.ctx, domain.ArtistFields{Name: "Anna de Vries"}); err != nil {
		t.Fatal(err)
	}
	r.location, err = e.locations.Create(e.ctx, domain.LocationFields{
		Name: "Hoofdkantoor", Address: "Damrak 1", PostalCode: "1012 LG",
		City: "Amsterdam", Country: "Nederland", TypeID: r.locType.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func (e *env) artwork(t *testing.T, r refs, title string, value float64) *domain.Artwork {
	t.Helper()
	a, err := e.artworks.Create(e.ctx, domain.ArtworkFields{
		Title: title, ArtistID: r.artist.ID, TypeID: r.artType.ID, LocationID: r.location.ID,
		MarketValue: &value,
	})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func upload(name string, body []byte) domain.Upload {
	return domain.Upload{FileName: name, Size: int64(len(body)), Content: bytes.NewReader(body)}
}

func firstPage(t *testing.T) domain.Page {
	t.Helper()
	p, err := domain.NewPage(1, 100)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
