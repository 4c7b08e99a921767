package gateway

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"rent-hub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVehicleGateway(t *testing.T) (*VehicleGateway, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return NewVehicleGateway(mockDB, slog.Default()), mockDB
}

func listingRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "brand", "model", "category", "year", "fuel",
		"transmission", "traction", "image_urls", "total_count",
	})
}

func TestVehicleGateway_List(t *testing.T) {
	t.Run("forwards filters and maps the page", func(t *testing.T) {
		gw, mockDB := newVehicleGateway(t)

		mockDB.ExpectQuery("FROM vehicles_by_filters").
			WithArgs("b1", nil, nil, nil, "Diesel", nil, nil, 2020, nil, 24, 0).
			WillReturnRows(listingRows().
				AddRow("v1", "Hilux 2021", "Toyota", "Hilux", "Pickup", 2021,
					"Diesel", "Automatic", "4WD", []string{"https://img/1.jpg"}, 2).
				AddRow("v2", "Hilux 2022", "Toyota", "Hilux", "Pickup", 2022,
					"Diesel", "Manual", "4WD", []string{}, 2))

		page, err := gw.List(context.Background(), domain.VehicleFilter{
			BrandID: "b1",
			Fuel:    domain.FuelDiesel,
			YearMin: 2020,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalCount)
		require.Len(t, page.Vehicles, 2)
		assert.Equal(t, "Hilux 2021", page.Vehicles[0].Name)
		assert.Equal(t, domain.FuelDiesel, page.Vehicles[0].Fuel)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("empty result is an empty page, not an error", func(t *testing.T) {
		gw, mockDB := newVehicleGateway(t)

		mockDB.ExpectQuery("FROM vehicles_by_filters").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(listingRows())

		page, err := gw.List(context.Background(), domain.VehicleFilter{})

		require.NoError(t, err)
		assert.Zero(t, page.TotalCount)
		assert.Empty(t, page.Vehicles)
	})
}

func TestVehicleGateway_Facets(t *testing.T) {
	gw, mockDB := newVehicleGateway(t)

	payload := []byte(`{
		"brands": [{"id":"b1","name":"Toyota","count":12}],
		"fuels": [{"name":"Diesel","count":7},{"name":"Gasoline","count":5}],
		"year_ranges": [{"range":"2020-2022","min":2020,"max":2022,"count":9}]
	}`)

	mockDB.ExpectQuery("SELECT vehicle_filter_facets").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"vehicle_filter_facets"}).AddRow(payload))

	facets, err := gw.Facets(context.Background(), domain.VehicleFilter{})

	require.NoError(t, err)
	require.Len(t, facets.Brands, 1)
	assert.Equal(t, "Toyota", facets.Brands[0].Name)
	assert.Equal(t, 12, facets.Brands[0].Count)
	require.Len(t, facets.YearRanges, 1)
	assert.Equal(t, "2020-2022", facets.YearRanges[0].Label)
	assert.Empty(t, facets.Categories)
}

func TestVehicleGateway_Get(t *testing.T) {
	t.Run("maps the detail projection", func(t *testing.T) {
		gw, mockDB := newVehicleGateway(t)
		desc := "Well equipped"
		created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

		mockDB.ExpectQuery("FROM vehicles v").
			WithArgs("v1").
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "name", "brand", "model", "category", "year", "fuel", "transmission",
				"traction", "image_urls", "color", "seats", "displacement", "power",
				"description", "features", "equipment",
				"d_id", "d_name", "d_phone", "d_handle", "created_at",
			}).AddRow(
				"v1", "Hilux 2021", "Toyota", "Hilux", "Pickup", 2021, "Diesel", "Automatic",
				"4WD", []string{"https://img/1.jpg"}, "White", 5, "2.8L", "201hp",
				&desc, []string{"ABS"}, []string{"GPS"},
				"d1", "Central Motors", "+51 1 555 0100", "central", created,
			))

		detail, err := gw.Get(context.Background(), "v1")

		require.NoError(t, err)
		assert.Equal(t, "Hilux 2021", detail.Name)
		assert.Equal(t, "Well equipped", detail.Description)
		assert.Equal(t, "Central Motors", detail.Dealership.Name)
		assert.Equal(t, created, detail.CreatedAt)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		gw, mockDB := newVehicleGateway(t)

		mockDB.ExpectQuery("FROM vehicles v").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := gw.Get(context.Background(), "ghost")

		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})
}

func TestVehicleGateway_Simulate(t *testing.T) {
	gw, mockDB := newVehicleGateway(t)

	mockDB.ExpectQuery("FROM simulate_rental").
		WithArgs("v1", 3, 20000, "app_driver", "good", true, 0.0).
		WillReturnRows(pgxmock.NewRows([]string{
			"depreciation_pct", "residual_value", "monthly_insurance", "monthly_tax",
			"monthly_inspection", "monthly_soat", "monthly_maintenance",
			"monthly_subtotal", "monthly_margin", "monthly_total",
		}).AddRow(0.45, 12500.0, 180.0, 42.5, 15.0, 12.0, 95.0, 820.0, 164.0, 984.0))

	quote, err := gw.Simulate(context.Background(), "v1", domain.SimulationParams{
		Years:       3,
		KmPerYear:   20000,
		ClientType:  domain.CustomerAppDriver,
		DriverScore: domain.DriverScoreGood,
		IncludeGPS:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, "v1", quote.VehicleID)
	assert.InDelta(t, 984.0, quote.MonthlyTotal, 0.001)
	assert.InDelta(t, 0.45, quote.DepreciationPct, 0.001)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
