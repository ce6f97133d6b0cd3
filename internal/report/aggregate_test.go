package report

import (
	"math"
	"testing"

	"kunstcollectie/internal/domain"
)

func f64(v float64) *float64 { return &v }

func artwork(id uint, title, artist string, value, purchase *float64) domain.Artwork {
	a := domain.Artwork{ID: id, Title: title, MarketValue: value, PurchasePrice: purchase}
	if artist != "" {
		a.Artist = &domain.Artist{Name: artist}
	}
	return a
}

func TestSummarizeGroupsByArtist(t *testing.T) {
	in := []domain.Artwork{
		artwork(1, "Zomer", "Anna de Vries", f64(3000), nil),
		artwork(2, "Winter", "Anna de Vries", f64(4000), nil),
		artwork(3, "Herfst", "", nil, nil),
	}
	o := Summarize(in)

	if o.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want 3", o.TotalCount)
	}
	if o.TotalValue != 7000 {
		t.Fatalf("TotalValue = %v, want 7000", o.TotalValue)
	}
	if got := o.ByArtist["Anna de Vries"]; got != (Group{Count: 2, Value: 7000}) {
		t.Fatalf("ByArtist[Anna de Vries] = %+v", got)
	}
	if got := o.ByArtist[Unknown]; got.Count != 1 || got.Value != 0 {
		t.Fatalf("ByArtist[%s] = %+v", Unknown, got)
	}
	if got := o.ByType[Unknown].Count; got != 3 {
		t.Fatalf("ByType[%s].Count = %d, want 3", Unknown, got)
	}
	// 按标题升序
	want := []string{"Herfst", "Winter", "Zomer"}
	for i, it := range o.Items {
		if it.Title != want[i] {
			t.Fatalf("Items[%d] = %q, want %q", i, it.Title, want[i])
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	o := Summarize(nil)
	if o.TotalCount != 0 || o.TotalValue != 0 {
		t.Fatalf("got %+v", o)
	}
	if o.Items == nil || o.ByArtist == nil {
		t.Fatal("maps and items must be non-nil")
	}
}

func TestValuateZeroPurchase(t *testing.T) {
	v := Valuate([]domain.Artwork{artwork(1, "A", "X", f64(500), nil)})
	if v.IncreasePercent != 0 || math.IsNaN(v.IncreasePercent) || math.IsInf(v.IncreasePercent, 0) {
		t.Fatalf("IncreasePercent = %v, want 0", v.IncreasePercent)
	}
	if v.Increase != 500 {
		t.Fatalf("Increase = %v, want 500", v.Increase)
	}
	if v.Items[0].IncreasePercent != 0 {
		t.Fatalf("item IncreasePercent = %v", v.Items[0].IncreasePercent)
	}
}

func TestValuateIncrease(t *testing.T) {
	v := Valuate([]domain.Artwork{
		artwork(1, "A", "X", f64(1500), f64(1000)),
		artwork(2, "B", "Y", f64(500), f64(1000)),
	})
	if v.TotalPurchaseValue != 2000 || v.TotalValue != 2000 {
		t.Fatalf("totals = %v / %v", v.TotalPurchaseValue, v.TotalValue)
	}
	if v.IncreasePercent != 0 {
		t.Fatalf("IncreasePercent = %v", v.IncreasePercent)
	}
	if v.Items[0].IncreasePercent != 50 || v.Items[1].IncreasePercent != -50 {
		t.Fatalf("item percents = %v, %v", v.Items[0].IncreasePercent, v.Items[1].IncreasePercent)
	}
	if v.ValueByArtist["X"] != 1500 {
		t.Fatalf("ValueByArtist = %v", v.ValueByArtist)
	}
}

func TestDimensions(t *testing.T) {
	cases := []struct {
		h, w, d *float64
		want    string
	}{
		{f64(50), f64(70), nil, "50 x 70 cm"},
		{f64(10.5), f64(20), f64(3), "10.5 x 20 x 3 cm"},
		{nil, nil, nil, ""},
	}
	for _, c := range cases {
		a := &domain.Artwork{Height: c.h, Width: c.w, Depth: c.d}
		if got := Dimensions(a); got != c.want {
			t.Errorf("Dimensions = %q, want %q", got, c.want)
		}
	}
}

func TestForLocationUnknownType(t *testing.T) {
	r := ForLocation(&domain.Location{ID: 4, Name: "Depot"}, nil)
	if r.Location.Type != Unknown {
		t.Fatalf("Type = %q", r.Location.Type)
	}
	if r.TotalCount != 0 {
		t.Fatalf("TotalCount = %d", r.TotalCount)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(domain.ReportOverview); got != "Overzicht Rapportage" {
		t.Fatalf("Title = %q", got)
	}
}
