package domain

import "time"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination applies the default page and page size to zero values.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

func (f Pagination) Limit() int {
	return f.PageSize
}

func (f Pagination) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Metadata describes the page a listing returned.
type Metadata struct {
	CurrentPage  int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// Metadata reports f against totalRecords matching rows. TotalPages is zero for an empty result.
func (f Pagination) Metadata(totalRecords int) *Metadata {
	return &Metadata{
		CurrentPage:  f.Page,
		PageSize:     f.PageSize,
		TotalPages:   (totalRecords + f.PageSize - 1) / f.PageSize,
		TotalRecords: totalRecords,
	}
}

// DateRange bounds report and listing queries. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (d DateRange) StartOrNil() *time.Time {
	if d.Start.IsZero() {
		return nil
	}
	return &d.Start
}

func (d DateRange) EndOrNil() *time.Time {
	if d.End.IsZero() {
		return nil
	}
	return &d.End
}
