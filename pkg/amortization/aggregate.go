package amortization

import "github.com/iwvelando/loan-planner/pkg/constants"

// YearlySummary holds the per-year rollup of a schedule, suitable for
// charting without re-deriving the underlying numbers.
type YearlySummary struct {
	Year                        int     `json:"year"`
	CapitalPaid                 float64 `json:"capitalPaid"`
	InterestPaid                float64 `json:"interestPaid"`
	RemainingPrincipalAtYearEnd float64 `json:"remainingPrincipalAtYearEnd"`
}

// ToYearlySummaries partitions schedule rows into buckets of 12 months and
// sums the capital and interest portions per bucket. Deferred months simply
// contribute zero capital and their own interest.
func ToYearlySummaries(rows []ScheduleRow, durationYears int) []YearlySummary {
	summaries := make([]YearlySummary, durationYears)
	for y := range summaries {
		summaries[y].Year = y + 1
	}

	for _, row := range rows {
		y := (row.MonthIndex - 1) / constants.MonthsPerYear
		if y < 0 || y >= durationYears {
			continue
		}
		summaries[y].CapitalPaid += row.CapitalPortion
		summaries[y].InterestPaid += row.InterestPortion
		summaries[y].RemainingPrincipalAtYearEnd = row.RemainingPrincipal
	}

	return summaries
}

// ToDisplayRows compacts a full schedule into a human-readable subset: all
// deferred rows collapse into one synthetic summary row, followed by one row
// per 12-month boundary and the final row. The sampling is presentational
// only; totals must always come from the full row set.
func ToDisplayRows(rows []ScheduleRow, deferredMonths int) []ScheduleRow {
	if len(rows) == 0 {
		return nil
	}

	var display []ScheduleRow

	if deferredMonths > 0 && deferredMonths <= len(rows) {
		first := rows[0]
		display = append(display, ScheduleRow{
			MonthIndex:         deferredMonths,
			Payment:            first.Payment,
			InterestPortion:    first.InterestPortion,
			CapitalPortion:     0,
			RemainingPrincipal: first.RemainingPrincipal,
			IsDeferred:         true,
		})
	}

	lastIndex := rows[len(rows)-1].MonthIndex
	for _, row := range rows {
		if row.MonthIndex <= deferredMonths {
			continue
		}
		if row.MonthIndex%constants.MonthsPerYear == 0 || row.MonthIndex == lastIndex {
			display = append(display, row)
		}
	}

	return display
}
