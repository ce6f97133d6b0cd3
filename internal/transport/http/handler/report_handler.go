package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/report"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
}

func NewReportHandler(reports *service.ReportService, exports *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// ExportPath 导出接口路径（超时中间件跳过）
const ExportPath = "/api/rapportages/export"

func (h *ReportHandler) Mount(e ez.EZ) {
	g := e.Group("/rapportages")

	ez.RegisterAction(g, ez.Action[none, report.Overview]{
		Method: http.MethodGet,
		Path:   "/overzicht",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (report.Overview, error) {
			f, err := query(c).Report()
			if err != nil {
				return report.Overview{}, err
			}
			return h.reports.Overview(c.Request.Context(), f)
		},
	})
	ez.RegisterAction(g, ez.Action[none, report.Valuation]{
		Method: http.MethodGet,
		Path:   "/waardering",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (report.Valuation, error) {
			f, err := query(c).Report()
			if err != nil {
				return report.Valuation{}, err
			}
			return h.reports.Valuation(c.Request.Context(), f)
		},
	})
	ez.RegisterAction(g, ez.Action[none, report.ArtistReport]{
		Method: http.MethodGet,
		Path:   "/kunstenaar/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (report.ArtistReport, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return report.ArtistReport{}, err
			}
			return h.reports.Artist(c.Request.Context(), id)
		},
	})
	ez.RegisterAction(g, ez.Action[none, report.LocationReport]{
		Method: http.MethodGet,
		Path:   "/locatie/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (report.LocationReport, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return report.LocationReport{}, err
			}
			return h.reports.Location(c.Request.Context(), id)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *service.ExportResult]{
		Method: http.MethodPost,
		Path:   "/export",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*service.ExportResult, error) {
			req, err := exportRequest(c)
			if err != nil {
				return nil, err
			}
			return h.exports.Export(c.Request.Context(), req)
		},
	})
	ez.RegisterAction(g, ez.Action[none, []domain.ReportExport]{
		Method: http.MethodGet,
		Path:   "/exports",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) ([]domain.ReportExport, error) {
			limit, _ := strconv.Atoi(c.Query("limit"))
			return h.exports.Recent(c.Request.Context(), limit)
		},
	})
}

// exportRequest {type, format, filters:{...}, fields:[...]}
func exportRequest(c *gin.Context) (service.ExportRequest, error) {
	m, err := ez.Body(c)
	if err != nil {
		return service.ExportRequest{}, err
	}
	str := func(k string) string {
		s, _ := m[k].(string)
		return strings.TrimSpace(s)
	}
	req := service.ExportRequest{
		Type:   domain.ReportType(str("type")),
		Format: str("format"),
	}
	if cl := ez.Claims(c); cl != nil {
		req.UserID = cl.UID
	}
	switch raw := m["filters"].(type) {
	case nil:
	case map[string]any:
		if req.Filters, err = service.ValuesOf(raw).Report(); err != nil {
			return req, err
		}
	default:
		return req, domain.Invalid("filters must be an object", "filters")
	}
	switch raw := m["fields"].(type) {
	case nil:
	case []any:
		for _, f := range raw {
			s, ok := f.(string)
			if !ok {
				return req, domain.Invalid("fields must be strings", "fields")
			}
			req.Fields = append(req.Fields, s)
		}
	default:
		return req, domain.Invalid("fields must be an array", "fields")
	}
	return req, nil
}
