package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"rent-hub/internal/domain"
	"rent-hub/internal/infrastructure/cache"
)

// GetVehicle loads a vehicle detail page through the read cache.
type GetVehicle struct {
	vehicles domain.VehicleRepository
	cache    *cache.ContentCache
	logger   *slog.Logger
}

// NewGetVehicle creates a new GetVehicle usecase.
func NewGetVehicle(v domain.VehicleRepository, c *cache.ContentCache, l *slog.Logger) *GetVehicle {
	return &GetVehicle{vehicles: v, cache: c, logger: l}
}

// Execute returns the detail projection for one vehicle.
func (uc *GetVehicle) Execute(ctx context.Context, id string) (*domain.VehicleDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: vehicle id required", domain.ErrInvalidInput)
	}

	if detail, found := uc.cache.Vehicle(id); found {
		return detail, nil
	}

	detail, err := uc.vehicles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.SetVehicle(id, detail)
	return detail, nil
}

// Comparison holds the two vehicles of a side-by-side compare.
type Comparison struct {
	Left  *domain.VehicleDetail
	Right *domain.VehicleDetail
}

// CompareVehicles loads exactly two distinct vehicles for comparison.
type CompareVehicles struct {
	get    *GetVehicle
	logger *slog.Logger
}

// NewCompareVehicles creates a new CompareVehicles usecase.
func NewCompareVehicles(get *GetVehicle, l *slog.Logger) *CompareVehicles {
	return &CompareVehicles{get: get, logger: l}
}

// Execute fetches both sides of the comparison. Either vehicle missing fails
// the whole compare.
func (uc *CompareVehicles) Execute(ctx context.Context, leftID, rightID string) (*Comparison, error) {
	if leftID == "" || rightID == "" {
		return nil, fmt.Errorf("%w: two vehicle ids required", domain.ErrInvalidInput)
	}
	if leftID == rightID {
		return nil, fmt.Errorf("%w: cannot compare a vehicle with itself", domain.ErrInvalidInput)
	}

	left, err := uc.get.Execute(ctx, leftID)
	if err != nil {
		return nil, err
	}
	right, err := uc.get.Execute(ctx, rightID)
	if err != nil {
		return nil, err
	}
	return &Comparison{Left: left, Right: right}, nil
}
