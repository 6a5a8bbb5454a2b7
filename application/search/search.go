package search

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"iusearch/constant"
	"iusearch/gateway"
	"iusearch/model"
	"iusearch/utils/errors"
	"iusearch/utils/logger"
)

const (
	peopleFallbackMessage  = "Search failed. Please check your connection and try again."
	vehicleFallbackMessage = "Vehicle search failed. Please check your connection and try again."
	recordFallbackMessage  = "Failed to load record details."
	emptyQueryMessage      = "Please enter a search query."
)

// SearchApp issues queries through the gateway and maps every outcome into a
// normalized envelope. The server is authoritative: no client-side retries,
// pagination, or ranking, and the UI never observes a raw transport error.
type SearchApp interface {
	SearchPeople(ctx context.Context, query string, searchType constant.SearchType) *model.SearchResult
	SearchVehicles(ctx context.Context, query string) *model.SearchResult
	RecordDetails(ctx context.Context, recordID, recordType string) *model.RecordResult
}

type searchAppImpl struct {
	gw *gateway.Client
}

func NewSearchApp(gw *gateway.Client) SearchApp {
	return &searchAppImpl{gw: gw}
}

// SearchPeople queries the people index by name or phone. Query text is
// trimmed exactly once, here, before anything hits the wire.
func (s *searchAppImpl) SearchPeople(ctx context.Context, query string, searchType constant.SearchType) *model.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return &model.SearchResult{Success: false, Data: []model.Record{}, Error: emptyQueryMessage}
	}

	var resp model.SearchResponse
	req := &model.PeopleSearchRequest{Query: query, SearchType: searchType}
	if err := s.gw.PostJSON(ctx, constant.EndpointSearchPeople, req, &resp); err != nil {
		logger.Error("[SearchPeople] err backend search", zap.String("error", err.Error()))
		return &model.SearchResult{Success: false, Data: []model.Record{}, Error: errors.UserMessage(err, peopleFallbackMessage)}
	}

	return &model.SearchResult{Success: true, Data: nonNilRecords(resp.Results), Total: resp.Total}
}

func (s *searchAppImpl) SearchVehicles(ctx context.Context, query string) *model.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return &model.SearchResult{Success: false, Data: []model.Record{}, Error: emptyQueryMessage}
	}

	var resp model.SearchResponse
	req := &model.VehicleSearchRequest{Query: query}
	if err := s.gw.PostJSON(ctx, constant.EndpointSearchVehicles, req, &resp); err != nil {
		logger.Error("[SearchVehicles] err backend search", zap.String("error", err.Error()))
		return &model.SearchResult{Success: false, Data: []model.Record{}, Error: errors.UserMessage(err, vehicleFallbackMessage)}
	}

	return &model.SearchResult{Success: true, Data: nonNilRecords(resp.Results), Total: resp.Total}
}

// RecordDetails fetches one record by id. The record shape is arbitrary and
// passed through as-is for defensive display.
func (s *searchAppImpl) RecordDetails(ctx context.Context, recordID, recordType string) *model.RecordResult {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return &model.RecordResult{Success: false, Error: recordFallbackMessage}
	}

	query := url.Values{}
	if recordType != "" {
		query.Set("type", recordType)
	}

	var rec model.Record
	path := constant.EndpointRecordDetails + "/" + url.PathEscape(recordID)
	if err := s.gw.GetJSON(ctx, path, query, &rec); err != nil {
		logger.Error("[RecordDetails] err backend fetch", zap.String("error", err.Error()))
		return &model.RecordResult{Success: false, Error: errors.UserMessage(err, recordFallbackMessage)}
	}

	return &model.RecordResult{Success: true, Data: &rec}
}

func nonNilRecords(records []model.Record) []model.Record {
	if records == nil {
		return []model.Record{}
	}
	return records
}
