package amortization

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func computeTestSchedule(t *testing.T, params LoanParameters) *Schedule {
	t.Helper()
	schedule, err := NewScheduleGenerator(zap.NewNop()).ComputeSchedule(params)
	if err != nil {
		t.Fatalf("ComputeSchedule() error = %v", err)
	}
	return schedule
}

func TestToYearlySummaries(t *testing.T) {
	params := LoanParameters{
		Principal:         200000,
		AnnualRatePercent: 3.35,
		DurationYears:     20,
		DeferredMonths:    12,
	}
	schedule := computeTestSchedule(t, params)

	summaries := ToYearlySummaries(schedule.Rows, params.DurationYears)
	if len(summaries) != params.DurationYears {
		t.Fatalf("got %d summaries, expected %d", len(summaries), params.DurationYears)
	}

	// Year 1 is fully deferred: no capital, twelve interest-only payments.
	first := summaries[0]
	if first.Year != 1 {
		t.Errorf("first summary year = %d, expected 1", first.Year)
	}
	if first.CapitalPaid != 0 {
		t.Errorf("year 1 capital paid = %v, expected 0", first.CapitalPaid)
	}
	expectedInterest := schedule.DeferredPayment * 12
	if math.Abs(first.InterestPaid-expectedInterest) > 1e-6 {
		t.Errorf("year 1 interest paid = %.4f, expected %.4f", first.InterestPaid, expectedInterest)
	}
	if first.RemainingPrincipalAtYearEnd != params.Principal {
		t.Errorf("year 1 ending balance = %v, expected untouched principal", first.RemainingPrincipalAtYearEnd)
	}

	// The yearly capital rollup covers the whole principal.
	totalCapital := 0.0
	for _, summary := range summaries {
		totalCapital += summary.CapitalPaid
	}
	if math.Abs(totalCapital-params.Principal) > 1e-6 {
		t.Errorf("total capital across years = %.6f, expected %.2f", totalCapital, params.Principal)
	}

	// Year-end balances match the last row of each 12-month bucket.
	for y, summary := range summaries {
		lastRow := schedule.Rows[(y+1)*12-1]
		if summary.RemainingPrincipalAtYearEnd != lastRow.RemainingPrincipal {
			t.Errorf("year %d ending balance = %v, expected %v",
				summary.Year, summary.RemainingPrincipalAtYearEnd, lastRow.RemainingPrincipal)
		}
	}

	final := summaries[len(summaries)-1]
	if math.Abs(final.RemainingPrincipalAtYearEnd) > 1e-6 {
		t.Errorf("final year ending balance = %v, expected 0", final.RemainingPrincipalAtYearEnd)
	}
}

func TestToDisplayRowsWithDeferral(t *testing.T) {
	params := LoanParameters{
		Principal:         200000,
		AnnualRatePercent: 3.35,
		DurationYears:     20,
		DeferredMonths:    12,
	}
	schedule := computeTestSchedule(t, params)

	display := ToDisplayRows(schedule.Rows, params.DeferredMonths)
	if len(display) == 0 {
		t.Fatalf("no display rows produced")
	}

	// The deferred block collapses into one synthetic leading row.
	summary := display[0]
	if !summary.IsDeferred {
		t.Errorf("first display row IsDeferred = false, expected deferred summary row")
	}
	if summary.MonthIndex != params.DeferredMonths {
		t.Errorf("deferred summary month index = %d, expected %d", summary.MonthIndex, params.DeferredMonths)
	}
	if math.Abs(summary.Payment-schedule.DeferredPayment) > 1e-9 {
		t.Errorf("deferred summary payment = %v, expected %v", summary.Payment, schedule.DeferredPayment)
	}
	if summary.CapitalPortion != 0 {
		t.Errorf("deferred summary capital = %v, expected 0", summary.CapitalPortion)
	}

	for i, row := range display[1:] {
		if row.IsDeferred {
			t.Errorf("display row %d is deferred, expected only the leading summary row to be", i+1)
		}
		if row.MonthIndex%12 != 0 && row.MonthIndex != params.TotalMonths() {
			t.Errorf("display row %d has month index %d, expected a 12-month boundary or the final month",
				i+1, row.MonthIndex)
		}
	}

	last := display[len(display)-1]
	if last.MonthIndex != params.TotalMonths() {
		t.Errorf("last display row month index = %d, expected %d", last.MonthIndex, params.TotalMonths())
	}
}

func TestToDisplayRowsWithoutDeferral(t *testing.T) {
	params := LoanParameters{
		Principal:         120000,
		AnnualRatePercent: 2.8,
		DurationYears:     15,
	}
	schedule := computeTestSchedule(t, params)

	display := ToDisplayRows(schedule.Rows, 0)

	// One row per year; the final month is a boundary itself.
	if len(display) != params.DurationYears {
		t.Fatalf("got %d display rows, expected %d", len(display), params.DurationYears)
	}
	for _, row := range display {
		if row.IsDeferred {
			t.Errorf("month %d: unexpected deferred display row", row.MonthIndex)
		}
		if row.MonthIndex%12 != 0 {
			t.Errorf("month %d: expected only 12-month boundaries", row.MonthIndex)
		}
	}
}

func TestToDisplayRowsEmptySchedule(t *testing.T) {
	if rows := ToDisplayRows(nil, 0); rows != nil {
		t.Errorf("ToDisplayRows(nil) = %v, expected nil", rows)
	}
}
