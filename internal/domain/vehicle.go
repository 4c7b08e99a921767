package domain

import "time"

// FuelType matches the backend enum for vehicle fuel.
type FuelType string

const (
	FuelGasoline FuelType = "Gasoline"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
)

// CustomerType matches the backend enum for simulation client segments.
type CustomerType string

const (
	CustomerAppDriver CustomerType = "app_driver"
	CustomerMype      CustomerType = "mype"
	CustomerCorporate CustomerType = "corporate"
)

// DriverScore matches the backend enum for driver history.
type DriverScore string

const (
	DriverScoreGood DriverScore = "good"
	DriverScoreBad  DriverScore = "bad"
)

// Vehicle is the listing card projection.
type Vehicle struct {
	ID           string
	Name         string
	Brand        string
	Model        string
	Category     string
	Year         int
	Fuel         FuelType
	Transmission string
	Traction     string
	ImageURLs    []string
}

// VehicleDetail extends the listing projection with detail-page fields.
type VehicleDetail struct {
	Vehicle
	Color        string
	Seats        int
	Displacement string
	Power        string
	Description  string
	Features     []string
	Equipment    []string
	Dealership   Dealership
	CreatedAt    time.Time
}

// Dealership identifies the dealership offering a vehicle.
type Dealership struct {
	ID     string
	Name   string
	Phone  string
	Handle string
}

// VehicleFilter carries the list/facet filter parameters. Zero values mean
// "no constraint"; the backend query functions interpret them, this service
// only forwards them.
type VehicleFilter struct {
	BrandID      string
	ModelID      string
	CategoryID   string
	DealershipID string
	Fuel         FuelType
	Transmission string
	Traction     string
	YearMin      int
	YearMax      int
	Limit        int
	Offset       int
}

// VehiclePage is one page of filtered listings with the unpaged total.
type VehiclePage struct {
	TotalCount int
	Vehicles   []Vehicle
}

// FacetOption is one selectable filter value with its result count.
type FacetOption struct {
	ID    string
	Name  string
	Count int
}

// RangeFacet is a bucketed numeric facet (year ranges).
type RangeFacet struct {
	Label string
	Min   int
	Max   int
	Count int
}

// FilterFacets is the aggregation the backend computes for the current filter
// selection. rent-hub never aggregates; it renders whatever the backend
// function returns.
type FilterFacets struct {
	Brands        []FacetOption
	Models        []FacetOption
	Categories    []FacetOption
	Dealerships   []FacetOption
	Fuels         []FacetOption
	Transmissions []FacetOption
	Tractions     []FacetOption
	YearRanges    []RangeFacet
}

// SimulationParams are the user-chosen inputs to the rental simulator.
type SimulationParams struct {
	Years        int          `validate:"required,min=1,max=6"`
	KmPerYear    int          `validate:"required,min=5000,max=100000"`
	ClientType   CustomerType `validate:"required,oneof=app_driver mype corporate"`
	DriverScore  DriverScore  `validate:"required,oneof=good bad"`
	IncludeGPS   bool
	DownPayment  float64 `validate:"min=0"`
}

// RentalQuote is the simulation result. All amounts are computed by the
// backend pricing function; the breakdown is rendered as-is.
type RentalQuote struct {
	VehicleID          string
	DepreciationPct    float64
	ResidualValue      float64
	MonthlyInsurance   float64
	MonthlyTax         float64
	MonthlyInspection  float64
	MonthlySOAT        float64
	MonthlyMaintenance float64
	MonthlySubtotal    float64
	MonthlyMargin      float64
	MonthlyTotal       float64
}
