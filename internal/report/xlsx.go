package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

type XLSX struct{}

func (XLSX) Ext() string { return "xlsx" }
func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSX) Render(w io.Writer, d *Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := d.Title
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]any, len(d.Fields))
	for i, h := range d.Header() {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(d.Fields) > 0 {
		last, err := excelize.CoordinatesToCellName(len(d.Fields), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	for i, it := range d.Items {
		row := make([]any, len(d.Fields))
		for j, field := range d.Fields {
			if n, ok := it.numeric(field); ok {
				row[j] = n
			} else {
				row[j] = it.Field(field)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	// 汇总放在明细下方，空一行
	r := len(d.Items) + 3
	for _, l := range d.Summary {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{l.Label, l.Value}); err != nil {
			return err
		}
		r++
	}
	return f.Write(w)
}
