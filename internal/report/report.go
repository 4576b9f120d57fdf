// Package report assembles the externally visible response values from
// engine output. Totals come from the closed-form identities over the full
// schedule rather than being re-derived row by row, and all monetary values
// are rounded here, at the presentation boundary.
package report

import (
	"github.com/iwvelando/loan-planner/pkg/amortization"
	"github.com/iwvelando/loan-planner/pkg/capacity"
	"github.com/iwvelando/loan-planner/pkg/mathutil"
)

// Amortization is the full amortization response: dashboard totals plus the
// chart and table views of the schedule.
type Amortization struct {
	MonthlyPayment               float64                      `json:"monthlyPayment"`
	MonthlyPaymentDuringDeferral float64                      `json:"monthlyPaymentDuringDeferral"`
	TotalInterestCost            float64                      `json:"totalInterestCost"`
	TotalInsuranceCost           float64                      `json:"totalInsuranceCost"`
	TotalRepaid                  float64                      `json:"totalRepaid"`
	YearlySummary                []amortization.YearlySummary `json:"yearlySummary"`
	DisplayRows                  []amortization.ScheduleRow   `json:"displayRows"`
}

// Capacity is the borrowing-capacity response.
type Capacity struct {
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	AvailablePayment  float64 `json:"availablePayment"`
	MaxLoanAmount     float64 `json:"maxLoanAmount"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	DurationYears     int     `json:"durationYears"`
}

// BuildAmortization derives the dashboard totals and presentation views from
// a computed schedule.
func BuildAmortization(params amortization.LoanParameters, schedule *amortization.Schedule) *Amortization {
	deferredTotal := schedule.DeferredPayment * float64(params.DeferredMonths)
	activeTotal := schedule.MonthlyPayment * float64(params.ActiveMonths())
	insuranceTotal := params.MonthlyInsurance() * float64(params.TotalMonths())

	summaries := amortization.ToYearlySummaries(schedule.Rows, params.DurationYears)
	for i := range summaries {
		summaries[i].CapitalPaid = mathutil.Round(summaries[i].CapitalPaid)
		summaries[i].InterestPaid = mathutil.Round(summaries[i].InterestPaid)
		summaries[i].RemainingPrincipalAtYearEnd = mathutil.Round(summaries[i].RemainingPrincipalAtYearEnd)
	}

	display := amortization.ToDisplayRows(schedule.Rows, params.DeferredMonths)
	for i := range display {
		display[i].Payment = mathutil.Round(display[i].Payment)
		display[i].InterestPortion = mathutil.Round(display[i].InterestPortion)
		display[i].CapitalPortion = mathutil.Round(display[i].CapitalPortion)
		display[i].RemainingPrincipal = mathutil.Round(display[i].RemainingPrincipal)
	}

	return &Amortization{
		MonthlyPayment:               mathutil.Round(schedule.MonthlyPayment),
		MonthlyPaymentDuringDeferral: mathutil.Round(schedule.DeferredPayment),
		TotalInterestCost:            mathutil.Round(deferredTotal + activeTotal - params.Principal),
		TotalInsuranceCost:           mathutil.Round(insuranceTotal),
		TotalRepaid:                  mathutil.Round(deferredTotal + activeTotal + insuranceTotal),
		YearlySummary:                summaries,
		DisplayRows:                  display,
	}
}

// BuildCapacity rounds a capacity result for presentation.
func BuildCapacity(result *capacity.Result) *Capacity {
	return &Capacity{
		MaxMonthlyPayment: mathutil.Round(result.MaxMonthlyPayment),
		AvailablePayment:  mathutil.Round(result.AvailablePayment),
		MaxLoanAmount:     mathutil.Round(result.MaxLoanAmount),
		AnnualRatePercent: result.AnnualRatePercent,
		DurationYears:     result.DurationYears,
	}
}
