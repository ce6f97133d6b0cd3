package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"kunstcollectie/internal/domain"
)

// Unknown 缺失关联时的分组名
const Unknown = "Onbekend"

type Group struct {
	Count int     `json:"aantal"`
	Value float64 `json:"waarde"`
}

// Item 报表明细行；Value 为当前市场价，缺失按 0
type Item struct {
	ID              uint       `json:"id"`
	Title           string     `json:"titel"`
	Artist          string     `json:"kunstenaar"`
	Type            string     `json:"type"`
	Location        string     `json:"locatie"`
	Dimensions      string     `json:"afmetingen"`
	ProductionDate  *time.Time `json:"productiedatum"`
	PurchaseDate    *time.Time `json:"aankoopdatum"`
	PurchasePrice   float64    `json:"aankoopprijs"`
	Value           float64    `json:"waarde"`
	InsuredValue    float64    `json:"verzekerde_waarde"`
	Increase        float64    `json:"waardestijging"`
	IncreasePercent float64    `json:"waardestijging_percentage"`
}

type Overview struct {
	TotalCount        int              `json:"totaal_aantal"`
	TotalValue        float64          `json:"totale_waarde"`
	TotalInsuredValue float64          `json:"totale_verzekerde_waarde"`
	ByType            map[string]Group `json:"per_type"`
	ByArtist          map[string]Group `json:"per_kunstenaar"`
	ByLocation        map[string]Group `json:"per_locatie"`
	Items             []Item           `json:"kunstwerken"`
}

type Valuation struct {
	TotalValue         float64            `json:"totale_waarde"`
	TotalInsuredValue  float64            `json:"totale_verzekerde_waarde"`
	TotalPurchaseValue float64            `json:"totale_aankoop_waarde"`
	Increase           float64            `json:"waardestijging"`
	IncreasePercent    float64            `json:"waardestijging_percentage"`
	ValueByArtist      map[string]float64 `json:"waarde_per_kunstenaar"`
	ValueByLocation    map[string]float64 `json:"waarde_per_locatie"`
	ValueByType        map[string]float64 `json:"waarde_per_type"`
	Items              []Item             `json:"kunstwerken"`
}

type ArtistHeader struct {
	ID        uint       `json:"id"`
	Name      string     `json:"naam"`
	BirthDate *time.Time `json:"geboortedatum"`
	DeathDate *time.Time `json:"overlijdensdatum"`
	Country   string     `json:"land"`
	Biography string     `json:"biografie"`
}

type ArtistReport struct {
	Artist ArtistHeader `json:"kunstenaar"`
	Overview
}

type LocationHeader struct {
	ID         uint   `json:"id"`
	Name       string `json:"naam"`
	Address    string `json:"adres"`
	PostalCode string `json:"postcode"`
	City       string `json:"plaats"`
	Country    string `json:"land"`
	Type       string `json:"type"`
}

type LocationReport struct {
	Location LocationHeader `json:"locatie"`
	Overview
}

// sortByTitle 标题升序，同名按 id；返回副本
func sortByTitle(in []domain.Artwork) []domain.Artwork {
	out := make([]domain.Artwork, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// percent 基数 <= 0 时为 0
func percent(delta, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return delta / base * 100
}

func artistName(a *domain.Artwork) string {
	if a.Artist == nil || a.Artist.Name == "" {
		return Unknown
	}
	return a.Artist.Name
}

func typeName(a *domain.Artwork) string {
	if a.Type == nil || a.Type.Name == "" {
		return Unknown
	}
	return a.Type.Name
}

func locationName(a *domain.Artwork) string {
	if a.Location == nil || a.Location.Name == "" {
		return Unknown
	}
	return a.Location.Name
}

// Dimensions "H x B x D cm"，缺失的维度省略
func Dimensions(a *domain.Artwork) string {
	var parts []string
	for _, d := range []*float64{a.Height, a.Width, a.Depth} {
		if d != nil {
			parts = append(parts, strconv.FormatFloat(*d, 'f', -1, 64))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " x ") + " cm"
}

func itemOf(a *domain.Artwork) Item {
	value := val(a.MarketValue)
	purchase := val(a.PurchasePrice)
	return Item{
		ID:              a.ID,
		Title:           a.Title,
		Artist:          artistName(a),
		Type:            typeName(a),
		Location:        locationName(a),
		Dimensions:      Dimensions(a),
		ProductionDate:  a.ProductionDate,
		PurchaseDate:    a.PurchaseDate,
		PurchasePrice:   purchase,
		Value:           value,
		InsuredValue:    val(a.InsuredValue),
		Increase:        value - purchase,
		IncreasePercent: percent(value-purchase, purchase),
	}
}

func addTo(m map[string]Group, key string, value float64) {
	g := m[key]
	g.Count++
	g.Value += value
	m[key] = g
}

// Summarize 概览：总数、总值、按类型/艺术家/地点分组。
// 求和按标题顺序逐项累加，结果可复现。
func Summarize(artworks []domain.Artwork) Overview {
	o := Overview{
		ByType:     map[string]Group{},
		ByArtist:   map[string]Group{},
		ByLocation: map[string]Group{},
		Items:      make([]Item, 0, len(artworks)),
	}
	for _, a := range sortByTitle(artworks) {
		it := itemOf(&a)
		o.TotalCount++
		o.TotalValue += it.Value
		o.TotalInsuredValue += it.InsuredValue
		addTo(o.ByType, it.Type, it.Value)
		addTo(o.ByArtist, it.Artist, it.Value)
		addTo(o.ByLocation, it.Location, it.Value)
		o.Items = append(o.Items, it)
	}
	return o
}

func Valuate(artworks []domain.Artwork) Valuation {
	v := Valuation{
		ValueByArtist:   map[string]float64{},
		ValueByLocation: map[string]float64{},
		ValueByType:     map[string]float64{},
		Items:           make([]Item, 0, len(artworks)),
	}
	for _, a := range sortByTitle(artworks) {
		it := itemOf(&a)
		v.TotalValue += it.Value
		v.TotalInsuredValue += it.InsuredValue
		v.TotalPurchaseValue += it.PurchasePrice
		v.ValueByArtist[it.Artist] += it.Value
		v.ValueByLocation[it.Location] += it.Value
		v.ValueByType[it.Type] += it.Value
		v.Items = append(v.Items, it)
	}
	v.Increase = v.TotalValue - v.TotalPurchaseValue
	v.IncreasePercent = percent(v.Increase, v.TotalPurchaseValue)
	return v
}

func ForArtist(artist *domain.Artist, artworks []domain.Artwork) ArtistReport {
	return ArtistReport{
		Artist: ArtistHeader{
			ID:        artist.ID,
			Name:      artist.Name,
			BirthDate: artist.BirthDate,
			DeathDate: artist.DeathDate,
			Country:   artist.Country,
			Biography: artist.Biography,
		},
		Overview: Summarize(artworks),
	}
}

func ForLocation(loc *domain.Location, artworks []domain.Artwork) LocationReport {
	typ := Unknown
	if loc.Type != nil && loc.Type.Name != "" {
		typ = loc.Type.Name
	}
	return LocationReport{
		Location: LocationHeader{
			ID:         loc.ID,
			Name:       loc.Name,
			Address:    loc.Address,
			PostalCode: loc.PostalCode,
			City:       loc.City,
			Country:    loc.Country,
			Type:       typ,
		},
		Overview: Summarize(artworks),
	}
}

// Title "Overzicht Rapportage"
func Title(t domain.ReportType) string {
	s := string(t)
	if s == "" {
		return "Rapportage"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Rapportage"
}

// FormatAmount 两位小数
func FormatAmount(v float64) string { return fmt.Sprintf("%.2f", v) }
