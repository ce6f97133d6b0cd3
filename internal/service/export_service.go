package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/report"
)

var reportExports = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "report_exports_total", Help: "Count of generated report exports"},
	[]string{"type", "format"},
)

func init() { prometheus.MustRegister(reportExports) }

// ExportRequest 导出参数；UserID 来自 token
type ExportRequest struct {
	Type    domain.ReportType
	Format  string
	Filters domain.ReportFilter
	Fields  []string
	UserID  uint
}

type ExportResult struct {
	Type        domain.ReportType `json:"type"`
	Format      string            `json:"formaat"`
	FileName    string            `json:"bestandsnaam"`
	DownloadURL string            `json:"download_url"`
}

type ExportService struct {
	reports *ReportService
	exports domain.ExportRepository
	store   *storage.Store
	events  events.Publisher
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time
}

func NewExportService(
	reports *ReportService,
	exports domain.ExportRepository,
	store *storage.Store,
	pub events.Publisher,
	timeout time.Duration,
	l *zap.Logger,
) *ExportService {
	return &ExportService{reports: reports, exports: exports, store: store, events: pub, timeout: timeout, log: l, now: time.Now}
}

// DownloadURL 报表文件的下载地址
func DownloadURL(dir, name string) string { return "/api/downloads/" + dir + "/" + name }

func (s *ExportService) validate(req *ExportRequest) (report.Renderer, []string, error) {
	req.Type = domain.ReportType(strings.TrimSpace(string(req.Type)))
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	var m missing
	m.str("type", string(req.Type))
	m.str("format", req.Format)
	if err := m.err(); err != nil {
		return nil, nil, err
	}
	r, err := report.RendererFor(req.Format)
	if err != nil {
		return nil, nil, err
	}
	if !req.Type.Valid() {
		return nil, nil, domain.Invalid("unknown report type", "type")
	}
	fields, err := report.ResolveFields(req.Fields)
	if err != nil {
		return nil, nil, err
	}
	return r, fields, nil
}

// Export 生成报表文件；客户端断开不会中止生成
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	r, fields, err := s.validate(&req)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	payload, err := s.reports.Build(ctx, req.Type, req.Filters)
	if err != nil {
		return nil, err
	}
	at := s.now().UTC()
	doc, err := report.NewDocument(req.Type, payload, fields, at)
	if err != nil {
		return nil, err
	}

	// 随机后缀：同一毫秒内的并发导出不会互相覆盖
	name := s.store.UniqueName("rapportage_"+string(req.Type), "."+r.Ext())
	f, stored, err := s.store.Create(storage.DirReports, name)
	if err != nil {
		return nil, err
	}
	if err := errors.Join(r.Render(f, doc), f.Close()); err != nil {
		removeFiles(s.store, s.log, stored)
		return nil, fmt.Errorf("render %s: %w", req.Format, err)
	}

	s.record(ctx, &req, fields, name)
	reportExports.WithLabelValues(string(req.Type), req.Format).Inc()
	s.log.Info("report exported",
		zap.String("type", string(req.Type)),
		zap.String("format", req.Format),
		zap.String("file", name),
		zap.Int("items", len(doc.Items)),
	)
	notify(ctx, s.events, s.log, events.ReportExported, map[string]any{
		"type": req.Type, "formaat": req.Format, "bestandsnaam": name, "gebruiker_id": req.UserID,
	})
	return &ExportResult{
		Type:        req.Type,
		Format:      req.Format,
		FileName:    name,
		DownloadURL: DownloadURL(storage.DirReports, name),
	}, nil
}

// record 审计记录写失败不影响已生成的文件
func (s *ExportService) record(ctx context.Context, req *ExportRequest, fields []string, name string) {
	filters, _ := json.Marshal(req.Filters)
	cols, _ := json.Marshal(fields)
	e := &domain.ReportExport{
		Type:     req.Type,
		Format:   req.Format,
		FileName: name,
		Filters:  datatypes.JSON(filters),
		Fields:   datatypes.JSON(cols),
		UserID:   req.UserID,
	}
	if err := s.exports.Record(ctx, e); err != nil {
		s.log.Warn("export audit failed", zap.String("file", name), zap.Error(err))
	}
}

func (s *ExportService) Recent(ctx context.Context, limit int) ([]domain.ReportExport, error) {
	if limit <= 0 || limit > domain.MaxLimit {
		limit = domain.DefaultLimit
	}
	return s.exports.Recent(ctx, limit)
}
