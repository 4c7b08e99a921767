package usecase

import (
	"context"
	"log/slog"

	"rent-hub/internal/domain"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// ListVehicles returns filtered listing pages. The filter semantics live in
// the backend query function; this usecase only bounds the paging inputs.
type ListVehicles struct {
	vehicles domain.VehicleRepository
	logger   *slog.Logger
}

// NewListVehicles creates a new ListVehicles usecase.
func NewListVehicles(v domain.VehicleRepository, l *slog.Logger) *ListVehicles {
	return &ListVehicles{vehicles: v, logger: l}
}

// Execute lists vehicles for the given filter.
func (uc *ListVehicles) Execute(ctx context.Context, filter domain.VehicleFilter) (*domain.VehiclePage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.vehicles.List(ctx, filter)
}

// GetAvailableFilters returns the facet aggregation for the current filter
// selection, computed by the backend.
type GetAvailableFilters struct {
	vehicles domain.VehicleRepository
	logger   *slog.Logger
}

// NewGetAvailableFilters creates a new GetAvailableFilters usecase.
func NewGetAvailableFilters(v domain.VehicleRepository, l *slog.Logger) *GetAvailableFilters {
	return &GetAvailableFilters{vehicles: v, logger: l}
}

// Execute fetches the facets for the given filter.
func (uc *GetAvailableFilters) Execute(ctx context.Context, filter domain.VehicleFilter) (*domain.FilterFacets, error) {
	return uc.vehicles.Facets(ctx, filter)
}
