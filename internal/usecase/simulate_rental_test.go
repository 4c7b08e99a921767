package usecase

import (
	"context"
	"log/slog"
	"testing"

	"rent-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() domain.SimulationParams {
	return domain.SimulationParams{
		Years:       3,
		KmPerYear:   20000,
		ClientType:  domain.CustomerMype,
		DriverScore: domain.DriverScoreGood,
	}
}

func TestSimulateRental_ForwardsToBackend(t *testing.T) {
	repo := &mockVehicleRepo{quote: &domain.RentalQuote{VehicleID: "v1", MonthlyTotal: 984}}
	uc := NewSimulateRental(repo, slog.Default())

	quote, err := uc.Execute(context.Background(), "v1", validParams())

	require.NoError(t, err)
	assert.InDelta(t, 984.0, quote.MonthlyTotal, 0.001)
	assert.Equal(t, 1, repo.simCalls)
	assert.Equal(t, domain.CustomerMype, repo.simParams.ClientType)
}

func TestSimulateRental_RejectsInvalidParams(t *testing.T) {
	repo := &mockVehicleRepo{}
	uc := NewSimulateRental(repo, slog.Default())

	cases := []struct {
		name   string
		mutate func(*domain.SimulationParams)
	}{
		{"zero years", func(p *domain.SimulationParams) { p.Years = 0 }},
		{"too many years", func(p *domain.SimulationParams) { p.Years = 12 }},
		{"mileage too low", func(p *domain.SimulationParams) { p.KmPerYear = 100 }},
		{"unknown client type", func(p *domain.SimulationParams) { p.ClientType = "tourist" }},
		{"unknown driver score", func(p *domain.SimulationParams) { p.DriverScore = "average" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)

			_, err := uc.Execute(context.Background(), "v1", params)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, repo.simCalls, "invalid input must never reach the backend")
}

func TestSimulateRental_RequiresVehicleID(t *testing.T) {
	uc := NewSimulateRental(&mockVehicleRepo{}, slog.Default())

	_, err := uc.Execute(context.Background(), "", validParams())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
