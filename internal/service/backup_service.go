package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
)

// Backup JSON 备份内容
type Backup struct {
	Date          time.Time         `json:"datum"`
	Artworks      []domain.Artwork  `json:"kunstwerken"`
	Artists       []domain.Artist   `json:"kunstenaars"`
	Locations     []domain.Location `json:"locaties"`
	LocationTypes []domain.Lookup   `json:"locatieTypes"`
	ArtworkTypes  []domain.Lookup   `json:"kunstwerkTypes"`
	Suppliers     []domain.Supplier `json:"leveranciers"`
}

type BackupResult struct {
	FileName    string `json:"bestandsnaam"`
	DownloadURL string `json:"download_url"`
}

type BackupService struct {
	artworks  domain.ArtworkRepository
	artists   domain.ArtistRepository
	locations domain.LocationRepository
	suppliers domain.SupplierRepository
	lookups   domain.LookupRepository
	store     *storage.Store
	events    events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewBackupService(
	artworks domain.ArtworkRepository,
	artists domain.ArtistRepository,
	locations domain.LocationRepository,
	suppliers domain.SupplierRepository,
	lookups domain.LookupRepository,
	store *storage.Store,
	pub events.Publisher,
	l *zap.Logger,
) *BackupService {
	return &BackupService{
		artworks: artworks, artists: artists, locations: locations,
		suppliers: suppliers, lookups: lookups,
		store: store, events: pub, log: l, now: time.Now,
	}
}

func (s *BackupService) collect(ctx context.Context) (*Backup, error) {
	b := &Backup{Date: s.now().UTC()}
	var err error
	if b.Artworks, err = s.artworks.All(ctx); err != nil {
		return nil, err
	}
	if b.Artists, err = s.artists.All(ctx); err != nil {
		return nil, err
	}
	if b.Locations, err = s.locations.All(ctx); err != nil {
		return nil, err
	}
	if b.LocationTypes, err = s.lookups.List(ctx, domain.KindLocationType); err != nil {
		return nil, err
	}
	if b.ArtworkTypes, err = s.lookups.List(ctx, domain.KindArtworkType); err != nil {
		return nil, err
	}
	if b.Suppliers, err = s.suppliers.All(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Create 写入 backups 目录；恢复不在范围内
func (s *BackupService) Create(ctx context.Context) (*BackupResult, error) {
	b, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	name := s.store.UniqueName("backup_"+b.Date.Format("20060102_150405"), ".json")
	f, stored, err := s.store.Create(storage.DirBackups, name)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := errors.Join(enc.Encode(b), f.Close()); err != nil {
		removeFiles(s.store, s.log, stored)
		return nil, err
	}
	s.log.Info("backup created", zap.String("file", name), zap.Int("artworks", len(b.Artworks)))
	notify(ctx, s.events, s.log, events.BackupCreated, map[string]any{"bestandsnaam": name})
	return &BackupResult{FileName: name, DownloadURL: DownloadURL(storage.DirBackups, name)}, nil
}
