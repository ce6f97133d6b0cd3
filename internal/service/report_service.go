package service

import (
	"context"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/report"
)

// ReportService 报表只读；聚合在 report 包中完成
type ReportService struct {
	artworks  domain.ArtworkRepository
	artists   domain.ArtistRepository
	locations domain.LocationRepository
}

func NewReportService(artworks domain.ArtworkRepository, artists domain.ArtistRepository, locations domain.LocationRepository) *ReportService {
	return &ReportService{artworks: artworks, artists: artists, locations: locations}
}

func checkRange(f domain.ReportFilter) error {
	if err := nonNegative("min_waarde", f.MinValue); err != nil {
		return err
	}
	if err := nonNegative("max_waarde", f.MaxValue); err != nil {
		return err
	}
	if f.MinValue != nil && f.MaxValue != nil && *f.MinValue > *f.MaxValue {
		return domain.Invalid("min_waarde exceeds max_waarde", "min_waarde", "max_waarde")
	}
	return nil
}

func (s *ReportService) Overview(ctx context.Context, f domain.ReportFilter) (report.Overview, error) {
	if err := checkRange(f); err != nil {
		return report.Overview{}, err
	}
	items, err := s.artworks.ForReport(ctx, f)
	if err != nil {
		return report.Overview{}, err
	}
	return report.Summarize(items), nil
}

func (s *ReportService) Valuation(ctx context.Context, f domain.ReportFilter) (report.Valuation, error) {
	if err := checkRange(f); err != nil {
		return report.Valuation{}, err
	}
	items, err := s.artworks.ForReport(ctx, f)
	if err != nil {
		return report.Valuation{}, err
	}
	return report.Valuate(items), nil
}

func (s *ReportService) Artist(ctx context.Context, id uint) (report.ArtistReport, error) {
	a, err := s.artists.Get(ctx, id)
	if err != nil {
		return report.ArtistReport{}, err
	}
	if a == nil {
		return report.ArtistReport{}, domain.NotFoundf("kunstenaar")
	}
	items, err := s.artworks.ForReport(ctx, domain.ReportFilter{ArtistID: id})
	if err != nil {
		return report.ArtistReport{}, err
	}
	return report.ForArtist(&a.Artist, items), nil
}

func (s *ReportService) Location(ctx context.Context, id uint) (report.LocationReport, error) {
	l, err := s.locations.Get(ctx, id)
	if err != nil {
		return report.LocationReport{}, err
	}
	if l == nil {
		return report.LocationReport{}, domain.NotFoundf("locatie")
	}
	items, err := s.artworks.ForReport(ctx, domain.ReportFilter{LocationID: id})
	if err != nil {
		return report.LocationReport{}, err
	}
	return report.ForLocation(&l.Location, items), nil
}

// Build 按类型生成报表；kunstenaar / locatie 需要对应 id
func (s *ReportService) Build(ctx context.Context, t domain.ReportType, f domain.ReportFilter) (any, error) {
	switch t {
	case domain.ReportOverview:
		return s.Overview(ctx, f)
	case domain.ReportValuation:
		return s.Valuation(ctx, f)
	case domain.ReportArtist:
		if f.ArtistID == 0 {
			return nil, domain.Invalid("artist report requires kunstenaar_id", "kunstenaar_id")
		}
		return s.Artist(ctx, f.ArtistID)
	case domain.ReportLocation:
		if f.LocationID == 0 {
			return nil, domain.Invalid("location report requires locatie_id", "locatie_id")
		}
		return s.Location(ctx, f.LocationID)
	}
	return nil, domain.Invalid("unknown report type", "type")
}
