package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"time"
)

type XML struct{}

func (XML) Ext() string         { return "xml" }
func (XML) ContentType() string { return "application/xml" }

// Render <rapportage><type/><datum/><data>…</data></rapportage>。
// data 由报表的 JSON 形态逐节点转换：对象键即元素名，数组元素用 <item>，
// 不是合法元素名的键（如艺术家姓名）写成 <groep naam="...">。
func (XML) Render(w io.Writer, d *Document) error {
	raw, err := json.Marshal(d.Payload)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "rapportage"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := enc.EncodeElement(string(d.Type), start("type")); err != nil {
		return err
	}
	if err := enc.EncodeElement(d.GeneratedAt.UTC().Format(time.RFC3339), start("datum")); err != nil {
		return err
	}
	if err := writeNode(enc, start("data"), tree); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func start(name string) xml.StartElement { return xml.StartElement{Name: xml.Name{Local: name}} }

func writeNode(enc *xml.Encoder, el xml.StartElement, v any) error {
	switch t := v.(type) {
	case map[string]any:
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := start(k)
			if !validName(k) {
				child = xml.StartElement{
					Name: xml.Name{Local: "groep"},
					Attr: []xml.Attr{{Name: xml.Name{Local: "naam"}, Value: k}},
				}
			}
			if err := writeNode(enc, child, t[k]); err != nil {
				return err
			}
		}
		return enc.EncodeToken(el.End())
	case []any:
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		for _, item := range t {
			if err := writeNode(enc, start("item"), item); err != nil {
				return err
			}
		}
		return enc.EncodeToken(el.End())
	case nil:
		return enc.EncodeElement("", el)
	case json.Number:
		return enc.EncodeElement(t.String(), el)
	case bool:
		return enc.EncodeElement(strconv.FormatBool(t), el)
	case string:
		return enc.EncodeElement(t, el)
	default:
		return enc.EncodeElement(t, el)
	}
}

// validName 只接受 ASCII 字母/下划线开头、字母数字 _ - . 组成的名字
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || r == '.' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return len(s) < 3 || !(s[0]|0x20 == 'x' && s[1]|0x20 == 'm' && s[2]|0x20 == 'l')
}
