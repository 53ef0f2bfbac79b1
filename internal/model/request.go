package model

import "github.com/propmarket/server/internal/utils/pagination"

// PaginationRequest defines pagination parameters.
type PaginationRequest struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// DefaultPagination applies default pagination values.
func (p *PaginationRequest) DefaultPagination(defaultLimit int) {
	p.Page, p.Limit = pagination.Normalize(p.Page, p.Limit, defaultLimit)
}

// Offset returns the offset for database queries.
func (p *PaginationRequest) Offset() int {
	return pagination.Offset(p.Page, p.Limit)
}
