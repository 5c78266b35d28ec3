package report

import (
	"sort"
	"time"

	"github.com/masapp/masapp-backend/internal/modules/order"
)

// countable reports whether an order participates in revenue aggregates.
// Cancelled orders never do.
func countable(o *order.Order) bool {
	return o.Status != order.StatusCancelled
}

// Summarize buckets orders into the standard dashboard windows relative to
// now.
func Summarize(orders []*order.Order, now time.Time) *Summary {
	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	s := &Summary{}
	for _, o := range orders {
		if !countable(o) {
			continue
		}
		t := o.CreatedAt
		switch {
		case !t.Before(dayStart):
			s.Today.add(o)
		case !t.Before(dayStart.AddDate(0, 0, -1)):
			s.Yesterday.add(o)
		}
		switch {
		case !t.Before(weekStart):
			s.ThisWeek.add(o)
		case !t.Before(weekStart.AddDate(0, 0, -7)):
			s.LastWeek.add(o)
		}
		switch {
		case !t.Before(monthStart):
			s.ThisMonth.add(o)
		case !t.Before(lastMonthStart):
			s.LastMonth.add(o)
		}
	}
	return s
}

func (p *PeriodStats) add(o *order.Order) {
	p.Orders++
	p.Revenue = round2(p.Revenue + o.TotalAmount)
}

// Trend builds a daily, weekly or monthly series ending at now. The series
// is bounded by how far back data exists (first order or the restaurant's
// creation, whichever is earlier to compute from) and by a fixed cap per
// period.
func Trend(orders []*order.Order, restaurantCreated, now time.Time, period string) []TrendPoint {
	var bucketStart func(time.Time) time.Time
	var stepBack func(time.Time) time.Time
	var label string
	var maxPoints int

	switch period {
	case PeriodWeekly:
		bucketStart, label, maxPoints = startOfWeek, "2006-01-02", maxWeeklyPoints
		stepBack = func(t time.Time) time.Time { return t.AddDate(0, 0, -7) }
	case PeriodMonthly:
		bucketStart, label, maxPoints = startOfMonth, "2006-01", maxMonthlyPoints
		stepBack = func(t time.Time) time.Time { return t.AddDate(0, -1, 0) }
	default:
		bucketStart, label, maxPoints = startOfDay, "2006-01-02", maxDailyPoints
		stepBack = func(t time.Time) time.Time { return t.AddDate(0, 0, -1) }
	}

	earliest := restaurantCreated
	for _, o := range orders {
		if countable(o) && (earliest.IsZero() || o.CreatedAt.Before(earliest)) {
			earliest = o.CreatedAt
		}
	}
	if earliest.IsZero() {
		earliest = now
	}

	// walk back from the current bucket until data runs out or the cap hits
	floor := bucketStart(earliest)
	starts := []time.Time{bucketStart(now)}
	for len(starts) < maxPoints && floor.Before(starts[len(starts)-1]) {
		starts = append(starts, stepBack(starts[len(starts)-1]))
	}

	series := make([]TrendPoint, len(starts))
	for i, start := range starts {
		series[len(starts)-1-i] = TrendPoint{Label: start.Format(label), Start: start}
	}

	for _, o := range orders {
		if !countable(o) || o.CreatedAt.Before(series[0].Start) {
			continue
		}
		idx := sort.Search(len(series), func(i int) bool {
			return series[i].Start.After(o.CreatedAt)
		}) - 1
		if idx >= 0 {
			series[idx].Orders++
			series[idx].Revenue = round2(series[idx].Revenue + o.TotalAmount)
		}
	}
	return series
}

// TopProducts accumulates quantity x unit price per product name across all
// order items and returns the ten biggest earners.
func TopProducts(orders []*order.Order) []TopProduct {
	byName := make(map[string]*TopProduct)
	for _, o := range orders {
		if !countable(o) {
			continue
		}
		for _, item := range o.Items {
			p, ok := byName[item.Name]
			if !ok {
				p = &TopProduct{Name: item.Name}
				byName[item.Name] = p
			}
			p.Quantity += item.Quantity
			p.Revenue = round2(p.Revenue + item.Price*float64(item.Quantity))
		}
	}

	out := make([]TopProduct, 0, len(byName))
	for _, p := range byName {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// HourlyHistogram buckets orders into the 08:00-20:00 working window and
// flags hours earning more than half of the best hour.
func HourlyHistogram(orders []*order.Order) []HourStats {
	hours := make([]HourStats, 0, histogramEndHour-histogramStartHour+1)
	for h := histogramStartHour; h <= histogramEndHour; h++ {
		hours = append(hours, HourStats{Hour: h})
	}

	var max float64
	for _, o := range orders {
		if !countable(o) {
			continue
		}
		h := o.CreatedAt.Hour()
		if h < histogramStartHour || h > histogramEndHour {
			continue
		}
		b := &hours[h-histogramStartHour]
		b.Orders++
		b.Revenue = round2(b.Revenue + o.TotalAmount)
		if b.Revenue > max {
			max = b.Revenue
		}
	}

	for i := range hours {
		hours[i].Profitable = max > 0 && hours[i].Revenue > max/2
	}
	return hours
}

// ── calendar helpers ──────────────────────────────────────────────────────────

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the preceding Monday midnight.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
