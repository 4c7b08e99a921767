package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rent-hub/internal/domain"
	"rent-hub/internal/infrastructure/cache"
	"rent-hub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVehicleRepo struct {
	page       *domain.VehiclePage
	facets     *domain.FilterFacets
	detail     *domain.VehicleDetail
	quote      *domain.RentalQuote
	err        error
	lastFilter domain.VehicleFilter
}

func (s *stubVehicleRepo) List(_ context.Context, filter domain.VehicleFilter) (*domain.VehiclePage, error) {
	s.lastFilter = filter
	return s.page, s.err
}

func (s *stubVehicleRepo) Facets(_ context.Context, filter domain.VehicleFilter) (*domain.FilterFacets, error) {
	s.lastFilter = filter
	return s.facets, s.err
}

func (s *stubVehicleRepo) Get(_ context.Context, id string) (*domain.VehicleDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.detail == nil || s.detail.ID != id {
		return nil, domain.ErrVehicleNotFound
	}
	return s.detail, nil
}

func (s *stubVehicleRepo) Simulate(_ context.Context, id string, _ domain.SimulationParams) (*domain.RentalQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quote
	q.VehicleID = id
	return &q, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newVehicleHandler(repo *stubVehicleRepo) *VehicleHandler {
	l := discardLogger()
	get := usecase.NewGetVehicle(repo, cache.NewContentCache(8, time.Minute), l)
	return NewVehicleHandler(
		usecase.NewListVehicles(repo, l),
		usecase.NewGetAvailableFilters(repo, l),
		get,
		usecase.NewCompareVehicles(get, l),
		usecase.NewSimulateRental(repo, l),
	)
}

func testDetail(id string) *domain.VehicleDetail {
	return &domain.VehicleDetail{
		Vehicle: domain.Vehicle{
			ID:           id,
			Name:         "Toyota Hilux 2023",
			Brand:        "Toyota",
			Model:        "Hilux",
			Category:     "Pickup",
			Year:         2023,
			Fuel:         domain.FuelDiesel,
			Transmission: "Manual",
			Traction:     "4x4",
		},
		Color:      "White",
		Seats:      5,
		Dealership: domain.Dealership{ID: "d-1", Name: "Central Motors"},
		CreatedAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestVehicleHandler_List(t *testing.T) {
	repo := &stubVehicleRepo{page: &domain.VehiclePage{
		TotalCount: 42,
		Vehicles:   []domain.Vehicle{testDetail("v-1").Vehicle},
	}}
	h := newVehicleHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles?brand_id=b-1&fuel=Diesel&year_min=2020&limit=10", nil)
	rec := httptest.NewRecorder()

	err := h.HandleList(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp vehiclePageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.TotalCount)
	require.Len(t, resp.Vehicles, 1)
	assert.Equal(t, "Toyota Hilux 2023", resp.Vehicles[0].Name)

	// Query parameters reach the repository filter.
	assert.Equal(t, "b-1", repo.lastFilter.BrandID)
	assert.Equal(t, domain.FuelDiesel, repo.lastFilter.Fuel)
	assert.Equal(t, 2020, repo.lastFilter.YearMin)
	assert.Equal(t, 10, repo.lastFilter.Limit)
}

func TestVehicleHandler_List_IgnoresMalformedNumbers(t *testing.T) {
	repo := &stubVehicleRepo{page: &domain.VehiclePage{Vehicles: []domain.Vehicle{}}}
	h := newVehicleHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles?year_min=abc&limit=xyz", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandleList(e.NewContext(req, rec)))
	assert.Equal(t, 0, repo.lastFilter.YearMin)
	// An unparseable limit falls back to the default page size.
	assert.Equal(t, 24, repo.lastFilter.Limit)
}

func TestVehicleHandler_Filters(t *testing.T) {
	repo := &stubVehicleRepo{facets: &domain.FilterFacets{
		Brands:     []domain.FacetOption{{ID: "b-1", Name: "Toyota", Count: 12}},
		YearRanges: []domain.RangeFacet{{Label: "2020-2022", Min: 2020, Max: 2022, Count: 7}},
	}}
	h := newVehicleHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles/filters", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandleFilters(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp facetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Brands, 1)
	assert.Equal(t, "Toyota", resp.Brands[0].Name)
	require.Len(t, resp.YearRanges, 1)
	assert.Equal(t, "2020-2022", resp.YearRanges[0].Range)
	// Empty facet groups serialize as empty arrays, not null.
	assert.Contains(t, rec.Body.String(), `"fuels":[]`)
}

func TestVehicleHandler_Get(t *testing.T) {
	repo := &stubVehicleRepo{detail: testDetail("v-1")}
	h := newVehicleHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("v-1")

	require.NoError(t, h.HandleGet(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp vehicleDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "v-1", resp.ID)
	assert.Equal(t, "Central Motors", resp.Dealership.Name)
}

func TestVehicleHandler_Get_NotFound(t *testing.T) {
	repo := &stubVehicleRepo{detail: testDetail("v-1")}
	h := newVehicleHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("v-missing")

	err := h.HandleGet(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestVehicleHandler_Compare(t *testing.T) {
	repo := &stubVehicleRepo{detail: testDetail("v-1")}
	h := newVehicleHandler(repo)

	tests := []struct {
		name     string
		ids      string
		wantCode int
	}{
		{"missing ids", "", http.StatusBadRequest},
		{"single id", "v-1", http.StatusBadRequest},
		{"three ids", "a,b,c", http.StatusBadRequest},
		{"identical ids", "v-1,v-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/vehicles/compare?ids="+tt.ids, nil)
			rec := httptest.NewRecorder()

			err := h.HandleCompare(e.NewContext(req, rec))
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestVehicleHandler_Simulate(t *testing.T) {
	repo := &stubVehicleRepo{quote: &domain.RentalQuote{MonthlyTotal: 950.5}}
	h := newVehicleHandler(repo)

	body := `{"years":3,"kmPerYear":20000,"clientType":"app_driver","driverScore":"good","includeGps":true,"downPayment":1000}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("v-1")

	require.NoError(t, h.HandleSimulate(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "v-1", resp.VehicleID)
	assert.Equal(t, 950.5, resp.MonthlyTotal)
}

func TestVehicleHandler_Simulate_InvalidParams(t *testing.T) {
	repo := &stubVehicleRepo{quote: &domain.RentalQuote{}}
	h := newVehicleHandler(repo)

	body := `{"years":9,"kmPerYear":20000,"clientType":"app_driver","driverScore":"good"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("v-1")

	err := h.HandleSimulate(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
