package nutrition

import (
	"sort"
	"time"

	"github.com/pageza/macro-tracker/backend/internal/models"
)

// WeekLength is the size of a weekly bucket in days
const WeekLength = 7

// Totals is the sum of the four macros over a set of meals
type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns the field-wise sum of t and o
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fats:     t.Fats + o.Fats,
	}
}

func mealTotals(m models.Meal) Totals {
	return Totals{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fats: m.Fats}
}

// DaySummary aggregates the meals attributed to one calendar day
type DaySummary struct {
	Date        time.Time     `json:"date"`
	Totals      Totals        `json:"totals"`
	NetCalories int           `json:"net_calories"`
	Meals       []models.Meal `json:"meals"`
}

// WeekSummary is a rollup of consecutive day summaries
type WeekSummary struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Days        int       `json:"days"`
	Totals      Totals    `json:"totals"`
	NetCalories int       `json:"net_calories"`
}

// RangeSummary is the rollup of every day summary in a range
type RangeSummary struct {
	Days        int    `json:"days"`
	Totals      Totals `json:"totals"`
	NetCalories int    `json:"net_calories"`
}

// DailyTotals returns one summary per calendar day of rng, in ascending date
// order. Meals dated outside rng are ignored. A nil target counts as zero.
func DailyTotals(meals []models.Meal, rng DateRange, target *int) []DaySummary {
	if !rng.Valid() {
		return []DaySummary{}
	}

	byDay := make(map[string][]models.Meal)
	for _, m := range meals {
		if !rng.Contains(m.Date) {
			continue
		}
		key := DayKey(m.Date)
		byDay[key] = append(byDay[key], m)
	}

	t := 0
	if target != nil {
		t = *target
	}

	days := make([]DaySummary, 0, rng.Days())
	for d := Day(rng.Start); !d.After(Day(rng.End)); d = d.AddDate(0, 0, 1) {
		dayMeals := byDay[DayKey(d)]
		var totals Totals
		for _, m := range dayMeals {
			totals = totals.Add(mealTotals(m))
		}
		if dayMeals == nil {
			dayMeals = []models.Meal{}
		}
		days = append(days, DaySummary{
			Date:        d,
			Totals:      totals,
			NetCalories: totals.Calories - t,
			Meals:       dayMeals,
		})
	}
	return days
}

// WeeklyTotals partitions day summaries into 7-day windows anchored at
// rng.End and walking backward. The earliest window is clipped at rng.Start
// and may be shorter than a week. Windows without any day summary are
// omitted. Windows are returned newest first.
func WeeklyTotals(days []DaySummary, rng DateRange) []WeekSummary {
	if !rng.Valid() {
		return []WeekSummary{}
	}

	start, end := Day(rng.Start), Day(rng.End)
	windows := make([]WeekSummary, (rng.Days()+WeekLength-1)/WeekLength)
	for _, d := range days {
		day := Day(d.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		w := &windows[daysBetween(day, end)/WeekLength]
		w.Days++
		w.Totals = w.Totals.Add(d.Totals)
		w.NetCalories += d.NetCalories
	}

	weeks := []WeekSummary{}
	for i, w := range windows {
		if w.Days == 0 {
			continue
		}
		w.End = end.AddDate(0, 0, -i*WeekLength)
		w.Start = w.End.AddDate(0, 0, -(WeekLength - 1))
		if w.Start.Before(start) {
			w.Start = start
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// RangeTotals sums every day summary
func RangeTotals(days []DaySummary) RangeSummary {
	var r RangeSummary
	for _, d := range days {
		r.Days++
		r.Totals = r.Totals.Add(d.Totals)
		r.NetCalories += d.NetCalories
	}
	return r
}

// Order selects the direction of SortDays and SortWeeks
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseOrder maps a query value onto an Order, defaulting to Ascending
func ParseOrder(s string) Order {
	if Order(s) == Descending {
		return Descending
	}
	return Ascending
}

// SortDays sorts day summaries in place by date
func SortDays(days []DaySummary, order Order) {
	sort.SliceStable(days, func(i, j int) bool {
		if order == Descending {
			return days[i].Date.After(days[j].Date)
		}
		return days[i].Date.Before(days[j].Date)
	})
}

// SortWeeks sorts week summaries in place by window start
func SortWeeks(weeks []WeekSummary, order Order) {
	sort.SliceStable(weeks, func(i, j int) bool {
		if order == Descending {
			return weeks[i].Start.After(weeks[j].Start)
		}
		return weeks[i].Start.Before(weeks[j].Start)
	})
}
