package report

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// DOCX 最小 WordprocessingML 包：标题、汇总段落、明细表格
type DOCX struct{}

func (DOCX) Ext() string { return "docx" }
func (DOCX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

func (DOCX) Render(w io.Writer, d *Document) error {
	zw := zip.NewWriter(w)
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"docProps/core.xml", docxCore(d)},
		{"word/document.xml", docxBody(d)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return err
		}
	}
	return zw.Close()
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func docxCore(d *Document) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>` + esc(d.Title) + `</dc:title>
<dc:creator>kunstcollectie</dc:creator>
<dcterms:created xsi:type="dcterms:W3CDTF">` + d.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z") + `</dcterms:created>
</cp:coreProperties>`
}

// run 文本片段；bold/size(半磅) 可选
func run(text string, bold bool, size int) string {
	var props strings.Builder
	if bold {
		props.WriteString("<w:b/>")
	}
	if size > 0 {
		props.WriteString(`<w:sz w:val="` + strconv.Itoa(size) + `"/>`)
	}
	rpr := ""
	if props.Len() > 0 {
		rpr = "<w:rPr>" + props.String() + "</w:rPr>"
	}
	return `<w:r>` + rpr + `<w:t xml:space="preserve">` + esc(text) + `</w:t></w:r>`
}

func para(align string, runs ...string) string {
	ppr := ""
	if align != "" {
		ppr = `<w:pPr><w:jc w:val="` + align + `"/></w:pPr>`
	}
	return "<w:p>" + ppr + strings.Join(runs, "") + "</w:p>"
}

func cell(text string, bold bool) string {
	return `<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>` + para("", run(text, bold, 18)) + `</w:tc>`
}

func docxBody(d *Document) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	b.WriteString(para("center", run(d.Title, true, 36)))
	if d.Subtitle != "" {
		b.WriteString(para("center", run(d.Subtitle, false, 24)))
	}
	b.WriteString(para("center", run("Gegenereerd op "+d.GeneratedAt.Format("02-01-2006 15:04"), false, 18)))

	for _, l := range d.Summary {
		b.WriteString(para("", run(l.Label+": ", true, 0), run(l.Value, false, 0)))
	}

	if len(d.Fields) > 0 {
		b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
		for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
			b.WriteString(`<w:` + side + ` w:val="single" w:sz="4" w:space="0" w:color="999999"/>`)
		}
		b.WriteString(`</w:tblBorders></w:tblPr>`)
		b.WriteString("<w:tr>")
		for _, h := range d.Header() {
			b.WriteString(cell(h, true))
		}
		b.WriteString("</w:tr>")
		for _, row := range d.Rows() {
			b.WriteString("<w:tr>")
			for _, v := range row {
				b.WriteString(cell(v, false))
			}
			b.WriteString("</w:tr>")
		}
		b.WriteString("</w:tbl>")
	}
	// body 必须以段落结尾
	b.WriteString(`<w:p/><w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`)
	return b.String()
}
