package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rent-hub/internal/domain"
	"rent-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// VehicleHandler serves the catalog read surfaces.
type VehicleHandler struct {
	list     *usecase.ListVehicles
	filters  *usecase.GetAvailableFilters
	get      *usecase.GetVehicle
	compare  *usecase.CompareVehicles
	simulate *usecase.SimulateRental
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(
	list *usecase.ListVehicles,
	filters *usecase.GetAvailableFilters,
	get *usecase.GetVehicle,
	compare *usecase.CompareVehicles,
	simulate *usecase.SimulateRental,
) *VehicleHandler {
	return &VehicleHandler{list: list, filters: filters, get: get, compare: compare, simulate: simulate}
}

// filterFromQuery maps the listing query parameters. Unknown values pass
// through; the backend query function decides what they match.
func filterFromQuery(c echo.Context) domain.VehicleFilter {
	return domain.VehicleFilter{
		BrandID:      c.QueryParam("brand_id"),
		ModelID:      c.QueryParam("model_id"),
		CategoryID:   c.QueryParam("category_id"),
		DealershipID: c.QueryParam("dealership_id"),
		Fuel:         domain.FuelType(c.QueryParam("fuel")),
		Transmission: c.QueryParam("transmission"),
		Traction:     c.QueryParam("traction"),
		YearMin:      intQueryParam(c, "year_min"),
		YearMax:      intQueryParam(c, "year_max"),
		Limit:        intQueryParam(c, "limit"),
		Offset:       intQueryParam(c, "offset"),
	}
}

func intQueryParam(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

type vehicleDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Category     string   `json:"category"`
	Year         int      `json:"year"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Traction     string   `json:"traction"`
	ImageURLs    []string `json:"imageUrls"`
}

type vehiclePageResponse struct {
	TotalCount int          `json:"totalCount"`
	Vehicles   []vehicleDTO `json:"vehicles"`
}

func toVehicleDTO(v domain.Vehicle) vehicleDTO {
	images := v.ImageURLs
	if images == nil {
		images = []string{}
	}
	return vehicleDTO{
		ID:           v.ID,
		Name:         v.Name,
		Brand:        v.Brand,
		Model:        v.Model,
		Category:     v.Category,
		Year:         v.Year,
		Fuel:         string(v.Fuel),
		Transmission: v.Transmission,
		Traction:     v.Traction,
		ImageURLs:    images,
	}
}

// HandleList processes GET /v1/vehicles.
func (h *VehicleHandler) HandleList(c echo.Context) error {
	page, err := h.list.Execute(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return mapDomainError(err)
	}

	resp := vehiclePageResponse{TotalCount: page.TotalCount, Vehicles: make([]vehicleDTO, 0, len(page.Vehicles))}
	for _, v := range page.Vehicles {
		resp.Vehicles = append(resp.Vehicles, toVehicleDTO(v))
	}
	return c.JSON(http.StatusOK, resp)
}

type facetOptionDTO struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type rangeFacetDTO struct {
	Range string `json:"range"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Count int    `json:"count"`
}

type facetsResponse struct {
	Brands        []facetOptionDTO `json:"brands"`
	Models        []facetOptionDTO `json:"models"`
	Categories    []facetOptionDTO `json:"categories"`
	Dealerships   []facetOptionDTO `json:"dealerships"`
	Fuels         []facetOptionDTO `json:"fuels"`
	Transmissions []facetOptionDTO `json:"transmissions"`
	Tractions     []facetOptionDTO `json:"tractions"`
	YearRanges    []rangeFacetDTO  `json:"yearRanges"`
}

func toFacetDTOs(in []domain.FacetOption) []facetOptionDTO {
	out := make([]facetOptionDTO, 0, len(in))
	for _, o := range in {
		out = append(out, facetOptionDTO{ID: o.ID, Name: o.Name, Count: o.Count})
	}
	return out
}

// HandleFilters processes GET /v1/vehicles/filters.
func (h *VehicleHandler) HandleFilters(c echo.Context) error {
	facets, err := h.filters.Execute(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return mapDomainError(err)
	}

	resp := facetsResponse{
		Brands:        toFacetDTOs(facets.Brands),
		Models:        toFacetDTOs(facets.Models),
		Categories:    toFacetDTOs(facets.Categories),
		Dealerships:   toFacetDTOs(facets.Dealerships),
		Fuels:         toFacetDTOs(facets.Fuels),
		Transmissions: toFacetDTOs(facets.Transmissions),
		Tractions:     toFacetDTOs(facets.Tractions),
		YearRanges:    make([]rangeFacetDTO, 0, len(facets.YearRanges)),
	}
	for _, r := range facets.YearRanges {
		resp.YearRanges = append(resp.YearRanges, rangeFacetDTO{Range: r.Label, Min: r.Min, Max: r.Max, Count: r.Count})
	}
	return c.JSON(http.StatusOK, resp)
}

type dealershipDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Handle string `json:"handle"`
}

type vehicleDetailResponse struct {
	vehicleDTO
	Color        string        `json:"color"`
	Seats        int           `json:"seats"`
	Displacement string        `json:"displacement"`
	Power        string        `json:"power"`
	Description  string        `json:"description,omitempty"`
	Features     []string      `json:"features"`
	Equipment    []string      `json:"equipment"`
	Dealership   dealershipDTO `json:"dealership"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func toDetailResponse(d *domain.VehicleDetail) vehicleDetailResponse {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	equipment := d.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return vehicleDetailResponse{
		vehicleDTO:   toVehicleDTO(d.Vehicle),
		Color:        d.Color,
		Seats:        d.Seats,
		Displacement: d.Displacement,
		Power:        d.Power,
		Description:  d.Description,
		Features:     features,
		Equipment:    equipment,
		Dealership: dealershipDTO{
			ID:     d.Dealership.ID,
			Name:   d.Dealership.Name,
			Phone:  d.Dealership.Phone,
			Handle: d.Dealership.Handle,
		},
		CreatedAt: d.CreatedAt,
	}
}

// HandleGet processes GET /v1/vehicles/:id.
func (h *VehicleHandler) HandleGet(c echo.Context) error {
	detail, err := h.get.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

type compareResponse struct {
	Left  vehicleDetailResponse `json:"left"`
	Right vehicleDetailResponse `json:"right"`
}

// HandleCompare processes GET /v1/vehicles/compare?ids=a,b.
func (h *VehicleHandler) HandleCompare(c echo.Context) error {
	ids := strings.Split(c.QueryParam("ids"), ",")
	if len(ids) != 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "compare requires exactly two vehicle ids")
	}

	cmp, err := h.compare.Execute(c.Request().Context(), strings.TrimSpace(ids[0]), strings.TrimSpace(ids[1]))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, compareResponse{
		Left:  toDetailResponse(cmp.Left),
		Right: toDetailResponse(cmp.Right),
	})
}

type simulateRequest struct {
	Years       int     `json:"years"`
	KmPerYear   int     `json:"kmPerYear"`
	ClientType  string  `json:"clientType"`
	DriverScore string  `json:"driverScore"`
	IncludeGPS  bool    `json:"includeGps"`
	DownPayment float64 `json:"downPayment"`
}

type quoteResponse struct {
	VehicleID          string  `json:"vehicleId"`
	DepreciationPct    float64 `json:"depreciationPct"`
	ResidualValue      float64 `json:"residualValue"`
	MonthlyInsurance   float64 `json:"monthlyInsurance"`
	MonthlyTax         float64 `json:"monthlyTax"`
	MonthlyInspection  float64 `json:"monthlyInspection"`
	MonthlySOAT        float64 `json:"monthlySoat"`
	MonthlyMaintenance float64 `json:"monthlyMaintenance"`
	MonthlySubtotal    float64 `json:"monthlySubtotal"`
	MonthlyMargin      float64 `json:"monthlyMargin"`
	MonthlyTotal       float64 `json:"monthlyTotal"`
}

// HandleSimulate processes POST /v1/vehicles/:id/simulate.
func (h *VehicleHandler) HandleSimulate(c echo.Context) error {
	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	quote, err := h.simulate.Execute(c.Request().Context(), c.Param("id"), domain.SimulationParams{
		Years:       req.Years,
		KmPerYear:   req.KmPerYear,
		ClientType:  domain.CustomerType(req.ClientType),
		DriverScore: domain.DriverScore(req.DriverScore),
		IncludeGPS:  req.IncludeGPS,
		DownPayment: req.DownPayment,
	})
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, quoteResponse{
		VehicleID:          quote.VehicleID,
		DepreciationPct:    quote.DepreciationPct,
		ResidualValue:      quote.ResidualValue,
		MonthlyInsurance:   quote.MonthlyInsurance,
		MonthlyTax:         quote.MonthlyTax,
		MonthlyInspection:  quote.MonthlyInspection,
		MonthlySOAT:        quote.MonthlySOAT,
		MonthlyMaintenance: quote.MonthlyMaintenance,
		MonthlySubtotal:    quote.MonthlySubtotal,
		MonthlyMargin:      quote.MonthlyMargin,
		MonthlyTotal:       quote.MonthlyTotal,
	})
}
