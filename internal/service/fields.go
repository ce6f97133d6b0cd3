package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kunstcollectie/internal/domain"
	"kunstcollectie/pkg/utils"
)

// Values 边界输入（JSON 或 xlsx 行）统一成 wire 键 -> 字符串，再解析成强类型字段
type Values map[string]string

// ValuesOf JSON 解码后的 map 转为 Values；null 视为未提供
func ValuesOf(m map[string]any) Values {
	out := make(Values, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case nil:
		case string:
			out[k] = x
		case bool:
			out[k] = strconv.FormatBool(x)
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case fmt.Stringer:
			out[k] = x.String()
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}

func (v Values) Str(key string) string { return strings.TrimSpace(v[key]) }

// parser 收集解析失败的字段
type parser struct {
	v   Values
	bad []string
}

func (p *parser) float(key string) *float64 {
	f, err := utils.ParseFloat(p.v[key])
	if err != nil {
		p.bad = append(p.bad, key)
	}
	return f
}

func (p *parser) id(key string) uint {
	n, err := utils.ParseUint(p.v[key])
	if err != nil {
		p.bad = append(p.bad, key)
		return 0
	}
	if n == nil {
		return 0
	}
	return *n
}

func (p *parser) optID(key string) *uint {
	n, err := utils.ParseUint(p.v[key])
	if err != nil {
		p.bad = append(p.bad, key)
		return nil
	}
	if n != nil && *n == 0 {
		return nil
	}
	return n
}

func (p *parser) date(key string) *time.Time {
	t, err := utils.ParseDate(p.v[key])
	if err != nil {
		p.bad = append(p.bad, key)
	}
	return t
}

func (p *parser) flag(key string) bool {
	b, err := utils.ParseBool(p.v[key])
	if err != nil {
		p.bad = append(p.bad, key)
	}
	return b
}

func (p *parser) err() error {
	if len(p.bad) == 0 {
		return nil
	}
	return domain.Invalid("malformed fields", p.bad...)
}

func (v Values) Artwork() (domain.ArtworkFields, error) {
	p := &parser{v: v}
	f := domain.ArtworkFields{
		Title:              v.Str("titel"),
		ArtistID:           p.id("kunstenaar_id"),
		TypeID:             p.id("type_id"),
		LocationID:         p.id("locatie_id"),
		SupplierID:         p.optID("leverancier_id"),
		Height:             p.float("hoogte"),
		Width:              p.float("breedte"),
		Depth:              p.float("diepte"),
		Weight:             p.float("gewicht"),
		ProductionDate:     p.date("productiedatum"),
		IsEstimatedDate:    p.flag("is_schatting_datum"),
		IsEdition:          p.flag("is_editie"),
		EditionDescription: v.Str("editie_beschrijving"),
		IsSigned:           p.flag("is_gesigneerd"),
		SignatureLocation:  v.Str("handtekening_locatie"),
		Description:        v.Str("beschrijving"),
		PurchaseDate:       p.date("aankoopdatum"),
		PurchasePrice:      p.float("aankoopprijs"),
		MarketValue:        p.float("huidige_marktprijs"),
		InsuredValue:       p.float("verzekerde_waarde"),
		Status:             domain.ArtworkStatus(v.Str("status")),
	}
	return f, p.err()
}

func (v Values) Artist() (domain.ArtistFields, error) {
	p := &parser{v: v}
	f := domain.ArtistFields{
		Name:       v.Str("naam"),
		Address:    v.Str("adres"),
		PostalCode: v.Str("postcode"),
		City:       v.Str("plaats"),
		Country:    v.Str("land"),
		Phone:      v.Str("telefoon"),
		Email:      v.Str("email"),
		Website:    v.Str("website"),
		BirthDate:  p.date("geboortedatum"),
		DeathDate:  p.date("overlijdensdatum"),
		Biography:  v.Str("biografie"),
	}
	return f, p.err()
}

func (v Values) Location() (domain.LocationFields, error) {
	p := &parser{v: v}
	f := domain.LocationFields{
		Name:       v.Str("naam"),
		Address:    v.Str("adres"),
		PostalCode: v.Str("postcode"),
		City:       v.Str("plaats"),
		Country:    v.Str("land"),
		TypeID:     p.id("type_id"),
		Latitude:   p.float("latitude"),
		Longitude:  p.float("longitude"),
	}
	return f, p.err()
}

func (v Values) Supplier() domain.SupplierFields {
	return domain.SupplierFields{
		Name:       v.Str("naam"),
		Address:    v.Str("adres"),
		PostalCode: v.Str("postcode"),
		City:       v.Str("plaats"),
		Country:    v.Str("land"),
		Phone:      v.Str("telefoon"),
		Email:      v.Str("email"),
		Website:    v.Str("website"),
	}
}

func (v Values) Lookup() domain.LookupFields {
	return domain.LookupFields{Name: v.Str("naam"), Description: v.Str("beschrijving")}
}

// Report 报表筛选参数
func (v Values) Report() (domain.ReportFilter, error) {
	p := &parser{v: v}
	f := domain.ReportFilter{
		ArtistID:   p.id("kunstenaar_id"),
		TypeID:     p.id("type_id"),
		LocationID: p.id("locatie_id"),
		MinValue:   p.float("min_waarde"),
		MaxValue:   p.float("max_waarde"),
	}
	return f, p.err()
}
