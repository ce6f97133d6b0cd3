package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"kunstcollectie/internal/domain"
)

// DefaultFields 未指定 fields 时导出的列
var DefaultFields = []string{"titel", "kunstenaar", "type", "locatie", "waarde"}

var fieldLabels = map[string]string{
	"id":                        "ID",
	"titel":                     "Titel",
	"kunstenaar":                "Kunstenaar",
	"type":                      "Type",
	"locatie":                   "Locatie",
	"afmetingen":                "Afmetingen",
	"productiedatum":            "Productiedatum",
	"aankoopdatum":              "Aankoopdatum",
	"aankoopprijs":              "Aankoopprijs",
	"waarde":                    "Waarde",
	"verzekerde_waarde":         "Verzekerde waarde",
	"waardestijging":            "Waardestijging",
	"waardestijging_percentage": "Waardestijging %",
}

func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// ResolveFields 空列表取默认；未知字段报 ValidationError
func ResolveFields(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return append([]string(nil), DefaultFields...), nil
	}
	var bad []string
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if _, ok := fieldLabels[f]; !ok {
			bad = append(bad, f)
			continue
		}
		out = append(out, f)
	}
	if len(bad) > 0 {
		return nil, domain.Invalid("unknown export fields", bad...)
	}
	return out, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Field 按字段名取展示值
func (it Item) Field(key string) string {
	switch key {
	case "id":
		return strconv.FormatUint(uint64(it.ID), 10)
	case "titel":
		return it.Title
	case "kunstenaar":
		return it.Artist
	case "type":
		return it.Type
	case "locatie":
		return it.Location
	case "afmetingen":
		return it.Dimensions
	case "productiedatum":
		return formatDate(it.ProductionDate)
	case "aankoopdatum":
		return formatDate(it.PurchaseDate)
	case "aankoopprijs":
		return FormatAmount(it.PurchasePrice)
	case "waarde":
		return FormatAmount(it.Value)
	case "verzekerde_waarde":
		return FormatAmount(it.InsuredValue)
	case "waardestijging":
		return FormatAmount(it.Increase)
	case "waardestijging_percentage":
		return FormatAmount(it.IncreasePercent)
	}
	return ""
}

// numeric 数值列在 xlsx 中写成数字
func (it Item) numeric(key string) (float64, bool) {
	switch key {
	case "id":
		return float64(it.ID), true
	case "aankoopprijs":
		return it.PurchasePrice, true
	case "waarde":
		return it.Value, true
	case "verzekerde_waarde":
		return it.InsuredValue, true
	case "waardestijging":
		return it.Increase, true
	case "waardestijging_percentage":
		return it.IncreasePercent, true
	}
	return 0, false
}

type Line struct {
	Label string
	Value string
}

// Document 渲染器的统一输入
type Document struct {
	Type        domain.ReportType
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Fields      []string
	Summary     []Line
	Items       []Item
	// Payload 原始报表结构（xml 全量输出）
	Payload any
}

// NewDocument 从报表结果构造导出文档
func NewDocument(t domain.ReportType, payload any, fields []string, at time.Time) (*Document, error) {
	d := &Document{Type: t, Title: Title(t), GeneratedAt: at, Fields: fields, Payload: payload}
	switch r := payload.(type) {
	case Overview:
		d.Items = r.Items
		d.Summary = overviewLines(r)
	case Valuation:
		d.Items = r.Items
		d.Summary = []Line{
			{"Totale waarde", FormatAmount(r.TotalValue)},
			{"Totale verzekerde waarde", FormatAmount(r.TotalInsuredValue)},
			{"Totale aankoopwaarde", FormatAmount(r.TotalPurchaseValue)},
			{"Waardestijging", FormatAmount(r.Increase)},
			{"Waardestijging %", FormatAmount(r.IncreasePercent)},
		}
	case ArtistReport:
		d.Subtitle = r.Artist.Name
		d.Items = r.Items
		d.Summary = overviewLines(r.Overview)
	case LocationReport:
		d.Subtitle = r.Location.Name
		if r.Location.City != "" {
			d.Subtitle += ", " + r.Location.City
		}
		d.Items = r.Items
		d.Summary = overviewLines(r.Overview)
	default:
		return nil, fmt.Errorf("report: unsupported payload %T", payload)
	}
	return d, nil
}

func overviewLines(o Overview) []Line {
	lines := []Line{
		{"Totaal aantal", strconv.Itoa(o.TotalCount)},
		{"Totale waarde", FormatAmount(o.TotalValue)},
	}
	keys := make([]string, 0, len(o.ByType))
	for k := range o.ByType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g := o.ByType[k]
		lines = append(lines, Line{"Type " + k, fmt.Sprintf("%d / %s", g.Count, FormatAmount(g.Value))})
	}
	return lines
}

// Header 表头
func (d *Document) Header() []string {
	out := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = Label(f)
	}
	return out
}

// Rows 按字段投影
func (d *Document) Rows() [][]string {
	rows := make([][]string, len(d.Items))
	for i, it := range d.Items {
		row := make([]string, len(d.Fields))
		for j, f := range d.Fields {
			row[j] = it.Field(f)
		}
		rows[i] = row
	}
	return rows
}

// Renderer 把文档写成某种文件格式
type Renderer interface {
	Render(w io.Writer, d *Document) error
	Ext() string
	ContentType() string
}

var renderers = map[string]Renderer{
	"pdf":  PDF{},
	"docx": DOCX{},
	"xlsx": XLSX{},
	"xml":  XML{},
}

// Formats 支持的导出格式
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for k := range renderers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func RendererFor(format string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, &domain.UnsupportedFormatError{Format: format, Supported: Formats()}
	}
	return r, nil
}
