package domain

import "fmt"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage 保证 (page-1)*limit 不溢出
	MaxPage = 1 << 20
)

// Page is a validated 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// NewPage 规范化分页参数，0 表示未传
func NewPage(page, limit int) (Page, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 || page > MaxPage {
		return Page{}, Invalid(fmt.Sprintf("page must be between 1 and %d", MaxPage), "page")
	}
	if limit < 1 {
		return Page{}, Invalid("limit must be >= 1", "limit")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}, nil
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination: pages = ceil(total / limit)
func NewPagination(total int64, p Page) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
}

// Paged 列表结果
type Paged[T any] struct {
	Items      []T
	Pagination Pagination
}

// Body / Meta 供传输层拆成 data + pagination
func (p Paged[T]) Body() any {
	if p.Items == nil {
		return []T{}
	}
	return p.Items
}

func (p Paged[T]) Meta() Pagination { return p.Pagination }
