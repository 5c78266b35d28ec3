package report

import "time"

// PeriodStats are the order count and revenue inside one calendar window.
type PeriodStats struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// Summary compares the standard calendar windows a dashboard shows side by
// side. Windows follow the server's local time; weeks start on Monday.
type Summary struct {
	Today     PeriodStats `json:"today"`
	Yesterday PeriodStats `json:"yesterday"`
	ThisWeek  PeriodStats `json:"this_week"`
	LastWeek  PeriodStats `json:"last_week"`
	ThisMonth PeriodStats `json:"this_month"`
	LastMonth PeriodStats `json:"last_month"`
}

// TrendPoint is one bucket of a daily/weekly/monthly series.
type TrendPoint struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	Orders  int       `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// TopProduct is one row of the revenue leaderboard.
type TopProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// HourStats is one hour of the working-day histogram. Profitable hours are
// those whose revenue exceeds half of the best hour's revenue.
type HourStats struct {
	Hour       int     `json:"hour"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Profitable bool    `json:"profitable"`
}

// Trend period identifiers and their series caps.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	maxDailyPoints   = 30
	maxWeeklyPoints  = 12
	maxMonthlyPoints = 12
)

// Working-day bounds for the hourly histogram.
const (
	histogramStartHour = 8
	histogramEndHour   = 20
)
