// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

// Package pagination provides offset-based pagination primitives for list endpoints.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPage is the page number used when the client does not supply one.
	DefaultPage = 1
	// DefaultPerPage is the page size used when the client does not supply one.
	DefaultPerPage = 20
	// MaxPerPage caps the page size to protect the database from huge scans.
	MaxPerPage = 100
)

// Params holds normalized pagination parameters extracted from a request.
type Params struct {
	Page    int
	PerPage int
}

// FromRequest extracts and normalizes pagination parameters from query string values.
// Out-of-range or malformed values fall back to defaults rather than erroring.
func FromRequest(request *http.Request) Params {
	params := Params{Page: DefaultPage, PerPage: DefaultPerPage}

	if raw := request.URL.Query().Get("page"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			params.Page = value
		}
	}
	if raw := request.URL.Query().Get("per_page"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			params.PerPage = value
		}
	}
	if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}
	return params
}

// Offset returns the SQL OFFSET corresponding to the page and page size.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the SQL LIMIT corresponding to the page size.
func (p Params) Limit() int {
	return p.PerPage
}

// Meta describes the pagination state of a list response.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta computes response metadata from request params and the total row count.
func NewMeta(params Params, totalItems int64) Meta {
	totalPages := int((totalItems + int64(params.PerPage) - 1) / int64(params.PerPage))
	return Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
