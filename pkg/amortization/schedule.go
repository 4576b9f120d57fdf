// Package amortization provides loan repayment schedule computation.
package amortization

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-planner/pkg/constants"
	"github.com/iwvelando/loan-planner/pkg/mathutil"
	"github.com/iwvelando/loan-planner/pkg/validation"
	"go.uber.org/zap"
)

// LoanParameters holds the inputs for an amortization computation.
type LoanParameters struct {
	Principal            float64 `json:"principal"`
	AnnualRatePercent    float64 `json:"annualRatePercent"`
	DurationYears        int     `json:"durationYears"`
	DeferredMonths       int     `json:"deferredMonths,omitempty"`
	InsuranceRatePercent float64 `json:"insuranceRatePercent,omitempty"`
}

// TotalMonths returns the total loan term in months.
func (p LoanParameters) TotalMonths() int {
	return p.DurationYears * constants.MonthsPerYear
}

// ActiveMonths returns the number of amortizing months after the deferred
// (interest-only) phase.
func (p LoanParameters) ActiveMonths() int {
	return p.TotalMonths() - p.DeferredMonths
}

// MonthlyInsurance returns the constant monthly insurance premium, computed
// on the original principal rather than the declining balance.
func (p LoanParameters) MonthlyInsurance() float64 {
	return mathutil.ApplyPercentage(p.Principal, p.InsuranceRatePercent) / constants.MonthsPerYear
}

// Validate checks the parameters against their domain constraints. A loan
// that is deferred for its entire term never amortizes, so that case is an
// error rather than a silently permanent balance.
func (p LoanParameters) Validate() error {
	if p.Principal <= 0 {
		return validation.NewParameterError("principal", "> 0")
	}
	if p.DurationYears <= 0 {
		return validation.NewParameterError("durationYears", "> 0")
	}
	if p.AnnualRatePercent < 0 {
		return validation.NewParameterError("annualRatePercent", ">= 0")
	}
	if p.InsuranceRatePercent < 0 {
		return validation.NewParameterError("insuranceRatePercent", ">= 0")
	}
	if p.DeferredMonths < 0 {
		return validation.NewParameterError("deferredMonths", ">= 0")
	}
	if p.DeferredMonths >= p.TotalMonths() {
		return validation.NewParameterError("deferredMonths",
			fmt.Sprintf("< totalMonths (%d)", p.TotalMonths()))
	}
	return nil
}

// ScheduleRow holds the values for a single monthly payment. Payment covers
// the principal and interest components only; insurance is tracked
// separately so the capital invariants stay visible to callers.
type ScheduleRow struct {
	MonthIndex         int     `json:"monthIndex"`
	Payment            float64 `json:"payment"`
	InterestPortion    float64 `json:"interestPortion"`
	CapitalPortion     float64 `json:"capitalPortion"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
	IsDeferred         bool    `json:"isDeferred"`
}

// Schedule is the result of an amortization computation.
type Schedule struct {
	// MonthlyPayment is the steady-state payment during the amortizing phase.
	MonthlyPayment float64
	// DeferredPayment is the flat interest-only payment during the deferred
	// phase; zero when the rate is zero or no deferral was requested.
	DeferredPayment float64
	Rows            []ScheduleRow
}

// CalculateMonthlyPayment calculates the steady-state monthly payment for the
// amortizing phase using the standard annuity formula. The deferred phase
// does not touch principal, so the formula always applies to the original
// principal over the active term.
func CalculateMonthlyPayment(principal, annualRatePercent float64, activeMonths int) float64 {
	if annualRatePercent == 0 {
		// For zero interest, simply divide the principal by the active term
		return principal / float64(activeMonths)
	}

	periodicRate := mathutil.MonthlyRate(annualRatePercent)
	return principal * periodicRate / (1 - math.Pow(1+periodicRate, -float64(activeMonths)))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualRatePercent)
}

// ScheduleGenerator provides utilities for generating loan amortization schedules
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// ComputeSchedule creates the complete month-by-month repayment schedule for
// a loan, including the optional leading interest-only phase. Values are left
// unrounded; rounding is a presentation concern.
func (g *ScheduleGenerator) ComputeSchedule(params LoanParameters) (*Schedule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	totalMonths := params.TotalMonths()
	activeMonths := params.ActiveMonths()

	deferredPayment := CalculateInterestPayment(params.Principal, params.AnnualRatePercent)
	monthlyPayment := CalculateMonthlyPayment(params.Principal, params.AnnualRatePercent, activeMonths)

	g.logger.Debug(fmt.Sprintf("computing schedule over %d months with steady payment %.2f", totalMonths, monthlyPayment),
		zap.String("op", "amortization.ComputeSchedule"),
		zap.Float64("principal", params.Principal),
		zap.Int("deferredMonths", params.DeferredMonths),
	)

	schedule := &Schedule{
		MonthlyPayment:  monthlyPayment,
		DeferredPayment: deferredPayment,
		Rows:            make([]ScheduleRow, 0, totalMonths),
	}

	remaining := params.Principal
	for month := 1; month <= totalMonths; month++ {
		interest := CalculateInterestPayment(remaining, params.AnnualRatePercent)

		if month <= params.DeferredMonths {
			schedule.Rows = append(schedule.Rows, ScheduleRow{
				MonthIndex:         month,
				Payment:            interest,
				InterestPortion:    interest,
				CapitalPortion:     0,
				RemainingPrincipal: remaining,
				IsDeferred:         true,
			})
			continue
		}

		capital := monthlyPayment - interest
		remaining = mathutil.Max(0, remaining-capital)
		schedule.Rows = append(schedule.Rows, ScheduleRow{
			MonthIndex:         month,
			Payment:            monthlyPayment,
			InterestPortion:    interest,
			CapitalPortion:     capital,
			RemainingPrincipal: remaining,
			IsDeferred:         false,
		})
	}

	return schedule, nil
}
