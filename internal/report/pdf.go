package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

type PDF struct{}

func (PDF) Ext() string         { return "pdf" }
func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Render(w io.Writer, d *Document) error {
	orientation := "P"
	if len(d.Fields) > 5 {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetTitle(d.Title, true)
	pdf.SetCreator("kunstcollectie", true)
	// 核心字体只支持 cp1252，先转码（é、ë 等）
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(d.Title), "", 1, "C", false, 0, "")
	if d.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, tr(d.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Gegenereerd op "+d.GeneratedAt.Format("02-01-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range d.Summary {
		pdf.CellFormat(70, 6, tr(l.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(l.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(d.Fields) > 0 {
		pageW, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		colW := (pageW - left - right) / float64(len(d.Fields))

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range d.Header() {
			pdf.CellFormat(colW, 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 8)
		for _, row := range d.Rows() {
			for _, v := range row {
				pdf.CellFormat(colW, 6, tr(truncate(v, colW)), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// truncate 粗略按列宽截断，避免溢出单元格
func truncate(s string, width float64) string {
	limit := int(width / 1.6)
	r := []rune(s)
	if limit < 4 || len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
