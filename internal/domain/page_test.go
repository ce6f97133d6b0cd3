package domain

import (
	"errors"
	"testing"
)

func TestNewPage(t *testing.T) {
	p, err := NewPage(0, 0)
	if err != nil || p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("defaults = %+v, %v", p, err)
	}
	if p, _ = NewPage(3, 500); p.Limit != MaxLimit || p.Offset() != 2*MaxLimit {
		t.Fatalf("capped = %+v offset %d", p, p.Offset())
	}

	for _, tc := range []struct{ page, limit int }{
		{-1, 10},
		{1, -5},
		{MaxPage + 1, 10},
		{int(^uint(0) >> 1), MaxLimit},
	} {
		if _, err := NewPage(tc.page, tc.limit); !errors.Is(err, ErrValidation) {
			t.Errorf("NewPage(%d, %d) = %v", tc.page, tc.limit, err)
		}
	}

	p, err = NewPage(MaxPage, MaxLimit)
	if err != nil || p.Offset() <= 0 {
		t.Fatalf("last page offset = %d, %v", p.Offset(), err)
	}
}

func TestNewPagination(t *testing.T) {
	p, _ := NewPage(2, 3)
	if got := NewPagination(7, p); got.Pages != 3 || got.Total != 7 {
		t.Fatalf("pagination = %+v", got)
	}
	if got := NewPagination(0, p); got.Pages != 0 {
		t.Fatalf("empty = %+v", got)
	}
}
