package reports

// PeriodTotals aggregates document amounts over one date range.
type PeriodTotals struct {
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
	Expenses  float64 `json:"expenses"`
	Profit    float64 `json:"profit"`
}

// Counts holds the ledger entity tallies shown on the dashboard.
type Counts struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Suppliers int `json:"suppliers"`
	LowStock  int `json:"low_stock"`
}

// Dashboard is the aggregated overview for today, this week, this month
// and this year.
type Dashboard struct {
	Today  PeriodTotals `json:"today"`
	Week   PeriodTotals `json:"week"`
	Month  PeriodTotals `json:"month"`
	Year   PeriodTotals `json:"year"`
	Counts Counts       `json:"counts"`
}

// ChartPoint is one bucket of a sales time series.
type ChartPoint struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// TopProduct is one row of the top-products-by-revenue report.
type TopProduct struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// CashFlowPoint is one day of cash in and out.
type CashFlowPoint struct {
	Day      string  `json:"day"`
	MoneyIn  float64 `json:"money_in"`
	MoneyOut float64 `json:"money_out"`
}
