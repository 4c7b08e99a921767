package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"rent-hub/internal/domain"

	"github.com/go-playground/validator/v10"
)

// SimulateRental validates simulator inputs and forwards them to the backend
// pricing function. The formula itself is never evaluated here.
type SimulateRental struct {
	vehicles domain.VehicleRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSimulateRental creates a new SimulateRental usecase.
func NewSimulateRental(v domain.VehicleRepository, l *slog.Logger) *SimulateRental {
	return &SimulateRental{
		vehicles: v,
		validate: validator.New(),
		logger:   l,
	}
}

// Execute returns the rental quote for one vehicle and parameter set.
func (uc *SimulateRental) Execute(ctx context.Context, vehicleID string, params domain.SimulationParams) (*domain.RentalQuote, error) {
	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle id required", domain.ErrInvalidInput)
	}
	if err := uc.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return uc.vehicles.Simulate(ctx, vehicleID, params)
}
