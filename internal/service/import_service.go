package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"kunstcollectie/internal/domain"
)

// ImportKind 可导入的数据类型
type ImportKind string

const (
	ImportArtworks  ImportKind = "kunstwerken"
	ImportArtists   ImportKind = "kunstenaars"
	ImportLocations ImportKind = "locaties"
)

func (k ImportKind) Valid() bool {
	return k == ImportArtworks || k == ImportArtists || k == ImportLocations
}

type ImportResult struct {
	Type     ImportKind `json:"type"`
	Imported int        `json:"aantal_records"`
	Skipped  int        `json:"overgeslagen"`
}

// ImportService xlsx 导入；每行复用对应 service 的校验，不合格的行跳过
type ImportService struct {
	artworks  *ArtworkService
	artists   *ArtistService
	locations *LocationService
	policy    UploadPolicy
	log       *zap.Logger
}

func NewImportService(artworks *ArtworkService, artists *ArtistService, locations *LocationService, policy UploadPolicy, l *zap.Logger) *ImportService {
	return &ImportService{artworks: artworks, artists: artists, locations: locations, policy: policy, log: l}
}

func (s *ImportService) Import(ctx context.Context, kind ImportKind, up domain.Upload) (*ImportResult, error) {
	if !kind.Valid() {
		return nil, domain.Invalid(fmt.Sprintf("type must be one of: %s, %s, %s", ImportArtworks, ImportArtists, ImportLocations), "type")
	}
	_, body, err := s.policy.Check(up, "bestand")
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(body)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		return nil, domain.Invalid("unreadable spreadsheet", "bestand")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, domain.Invalid("unreadable spreadsheet", "bestand")
	}
	res := &ImportResult{Type: kind}
	if len(rows) == 0 {
		return res, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for n, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v := make(Values, len(header))
		empty := true
		for i, key := range header {
			if key == "" || i >= len(row) {
				continue
			}
			v[key] = row[i]
			if strings.TrimSpace(row[i]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		if err := s.importRow(ctx, kind, v); err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return nil, err
			}
			res.Skipped++
			s.log.Debug("import row skipped", zap.String("type", string(kind)), zap.Int("row", n+2), zap.Error(err))
			continue
		}
		res.Imported++
	}
	s.log.Info("import done", zap.String("type", string(kind)), zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (s *ImportService) importRow(ctx context.Context, kind ImportKind, v Values) error {
	switch kind {
	case ImportArtworks:
		in, err := v.Artwork()
		if err != nil {
			return err
		}
		_, err = s.artworks.Create(ctx, in)
		return err
	case ImportArtists:
		in, err := v.Artist()
		if err != nil {
			return err
		}
		_, err = s.artists.Create(ctx, in)
		return err
	default:
		in, err := v.Location()
		if err != nil {
			return err
		}
		_, err = s.locations.Create(ctx, in)
		return err
	}
}
