package model

import "iusearch/constant"

// PeopleSearchRequest is the wire body for POST /search/people.
type PeopleSearchRequest struct {
	Query      string              `json:"query" validate:"required"`
	SearchType constant.SearchType `json:"searchType" validate:"required,oneof=name phone"`
}

// VehicleSearchRequest is the wire body for POST /search/vehicles.
type VehicleSearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// SearchResponse is the backend payload for both search endpoints.
type SearchResponse struct {
	Results []Record `json:"results"`
	Total   int      `json:"total"`
}

// ErrorResponse is the backend error body shape. Message, when present, is
// preferred over any fixed fallback in user-facing errors.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SearchResult is the normalized envelope every search operation returns.
// Success false implies Data is empty and Error is set.
type SearchResult struct {
	Success bool     `json:"success"`
	Data    []Record `json:"data"`
	Total   int      `json:"total"`
	Error   string   `json:"error,omitempty"`
}

// RecordResult wraps a single record detail lookup.
type RecordResult struct {
	Success bool    `json:"success"`
	Data    *Record `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}
