package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"rent-hub/internal/domain"

	"github.com/jackc/pgx/v5"
)

// VehicleGateway implements domain.VehicleRepository. Listing, facet
// aggregation and rental simulation all call backend-owned SQL functions; the
// business rules live in the database, this gateway only forwards parameters
// and maps rows.
type VehicleGateway struct {
	db     DB
	logger *slog.Logger
}

// NewVehicleGateway creates a new vehicle gateway.
func NewVehicleGateway(db DB, logger *slog.Logger) *VehicleGateway {
	return &VehicleGateway{
		db:     db,
		logger: logger.With("component", "vehicle_gateway"),
	}
}

const vehiclesByFiltersQuery = `
	SELECT id, name, brand, model, category, year, fuel, transmission,
	       traction, image_urls, total_count
	FROM vehicles_by_filters($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// List returns one page of filtered listings plus the unpaged total.
func (g *VehicleGateway) List(ctx context.Context, filter domain.VehicleFilter) (*domain.VehiclePage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 24
	}

	rows, err := g.db.Query(ctx, vehiclesByFiltersQuery,
		nullIfEmpty(filter.BrandID),
		nullIfEmpty(filter.ModelID),
		nullIfEmpty(filter.CategoryID),
		nullIfEmpty(filter.DealershipID),
		nullIfEmpty(string(filter.Fuel)),
		nullIfEmpty(filter.Transmission),
		nullIfEmpty(filter.Traction),
		nullIfZero(filter.YearMin),
		nullIfZero(filter.YearMax),
		limit,
		filter.Offset,
	)
	if err != nil {
		g.logger.ErrorContext(ctx, "vehicle listing query failed", "error", err)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	page := &domain.VehiclePage{Vehicles: []domain.Vehicle{}}
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Brand, &v.Model, &v.Category, &v.Year,
			&v.Fuel, &v.Transmission, &v.Traction, &v.ImageURLs, &page.TotalCount); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		page.Vehicles = append(page.Vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vehicle listing rows failed: %w", err)
	}
	return page, nil
}

// facetsPayload matches the JSON document produced by the facet function.
type facetsPayload struct {
	Brands        []facetOption `json:"brands"`
	Models        []facetOption `json:"models"`
	Categories    []facetOption `json:"categories"`
	Dealerships   []facetOption `json:"dealerships"`
	Fuels         []facetOption `json:"fuels"`
	Transmissions []facetOption `json:"transmissions"`
	Tractions     []facetOption `json:"tractions"`
	YearRanges    []rangeFacet  `json:"year_ranges"`
}

type facetOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type rangeFacet struct {
	Range string `json:"range"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Count int    `json:"count"`
}

const vehicleFacetsQuery = `
	SELECT vehicle_filter_facets($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Facets returns the available-filter aggregation for the current selection.
func (g *VehicleGateway) Facets(ctx context.Context, filter domain.VehicleFilter) (*domain.FilterFacets, error) {
	var raw []byte
	row := g.db.QueryRow(ctx, vehicleFacetsQuery,
		nullIfEmpty(filter.BrandID),
		nullIfEmpty(filter.ModelID),
		nullIfEmpty(filter.CategoryID),
		nullIfEmpty(filter.DealershipID),
		nullIfEmpty(string(filter.Fuel)),
		nullIfEmpty(filter.Transmission),
		nullIfEmpty(filter.Traction),
		nullIfZero(filter.YearMin),
		nullIfZero(filter.YearMax),
	)
	if err := row.Scan(&raw); err != nil {
		g.logger.ErrorContext(ctx, "facet query failed", "error", err)
		return nil, fmt.Errorf("failed to fetch filter facets: %w", err)
	}

	var payload facetsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode filter facets: %w", err)
	}

	return &domain.FilterFacets{
		Brands:        mapFacetOptions(payload.Brands),
		Models:        mapFacetOptions(payload.Models),
		Categories:    mapFacetOptions(payload.Categories),
		Dealerships:   mapFacetOptions(payload.Dealerships),
		Fuels:         mapFacetOptions(payload.Fuels),
		Transmissions: mapFacetOptions(payload.Transmissions),
		Tractions:     mapFacetOptions(payload.Tractions),
		YearRanges:    mapRangeFacets(payload.YearRanges),
	}, nil
}

func mapFacetOptions(in []facetOption) []domain.FacetOption {
	out := make([]domain.FacetOption, 0, len(in))
	for _, o := range in {
		out = append(out, domain.FacetOption{ID: o.ID, Name: o.Name, Count: o.Count})
	}
	return out
}

func mapRangeFacets(in []rangeFacet) []domain.RangeFacet {
	out := make([]domain.RangeFacet, 0, len(in))
	for _, r := range in {
		out = append(out, domain.RangeFacet{Label: r.Range, Min: r.Min, Max: r.Max, Count: r.Count})
	}
	return out
}

const vehicleDetailQuery = `
	SELECT v.id, v.name, b.name, m.name, c.name, v.year, v.fuel, v.transmission,
	       v.traction, v.image_urls, v.color, v.seats, v.displacement, v.power,
	       v.description, v.features, v.equipment,
	       d.id, d.name, d.phone, d.handle, v.created_at
	FROM vehicles v
	JOIN models m ON m.id = v.model_id
	JOIN brands b ON b.id = m.brand_id
	JOIN categories c ON c.id = v.category_id
	JOIN dealerships d ON d.id = v.dealership_id
	WHERE v.id = $1 AND v.is_active`

// Get loads the detail-page projection for one vehicle.
func (g *VehicleGateway) Get(ctx context.Context, id string) (*domain.VehicleDetail, error) {
	var (
		detail      domain.VehicleDetail
		description *string
	)

	row := g.db.QueryRow(ctx, vehicleDetailQuery, id)
	err := row.Scan(&detail.ID, &detail.Name, &detail.Brand, &detail.Model, &detail.Category,
		&detail.Year, &detail.Fuel, &detail.Transmission, &detail.Traction, &detail.ImageURLs,
		&detail.Color, &detail.Seats, &detail.Displacement, &detail.Power,
		&description, &detail.Features, &detail.Equipment,
		&detail.Dealership.ID, &detail.Dealership.Name, &detail.Dealership.Phone,
		&detail.Dealership.Handle, &detail.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrVehicleNotFound, id)
		}
		g.logger.ErrorContext(ctx, "vehicle detail query failed", "vehicle_id", id, "error", err)
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	if description != nil {
		detail.Description = *description
	}
	return &detail, nil
}

const simulateRentalQuery = `
	SELECT depreciation_pct, residual_value, monthly_insurance, monthly_tax,
	       monthly_inspection, monthly_soat, monthly_maintenance,
	       monthly_subtotal, monthly_margin, monthly_total
	FROM simulate_rental($1, $2, $3, $4, $5, $6, $7)`

// Simulate invokes the backend pricing function for one vehicle. The formula
// is owned by the backend; a vehicle unknown to it maps to
// domain.ErrVehicleNotFound.
func (g *VehicleGateway) Simulate(ctx context.Context, id string, params domain.SimulationParams) (*domain.RentalQuote, error) {
	quote := &domain.RentalQuote{VehicleID: id}

	row := g.db.QueryRow(ctx, simulateRentalQuery,
		id,
		params.Years,
		params.KmPerYear,
		string(params.ClientType),
		string(params.DriverScore),
		params.IncludeGPS,
		params.DownPayment,
	)
	err := row.Scan(&quote.DepreciationPct, &quote.ResidualValue, &quote.MonthlyInsurance,
		&quote.MonthlyTax, &quote.MonthlyInspection, &quote.MonthlySOAT,
		&quote.MonthlyMaintenance, &quote.MonthlySubtotal, &quote.MonthlyMargin,
		&quote.MonthlyTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrVehicleNotFound, id)
		}
		g.logger.ErrorContext(ctx, "rental simulation failed", "vehicle_id", id, "error", err)
		return nil, fmt.Errorf("failed to simulate rental: %w", err)
	}
	return quote, nil
}
