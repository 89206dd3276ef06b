package handler

import "github.com/websiters/gastroreview/internal/core/ports"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPagination(total int64, page ports.Page) paginationResponse {
	pages := int(total) / page.Limit
	if int(total)%page.Limit != 0 {
		pages++
	}
	return paginationResponse{
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: pages,
	}
}
