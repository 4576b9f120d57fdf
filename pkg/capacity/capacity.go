// Package capacity estimates the maximum loan principal a borrower can
// obtain under the fixed debt-to-income ceiling.
package capacity

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-planner/pkg/constants"
	"github.com/iwvelando/loan-planner/pkg/mathutil"
	"github.com/iwvelando/loan-planner/pkg/validation"
	"go.uber.org/zap"
)

// Input holds the household financials and target loan terms for a
// borrowing-capacity estimate.
type Input struct {
	NetMonthlyIncome        float64 `json:"netMonthlyIncome"`
	ExistingMonthlyPayments float64 `json:"existingMonthlyPayments,omitempty"`
	AnnualRatePercent       float64 `json:"annualRatePercent"`
	DurationYears           int     `json:"durationYears"`
}

// Validate checks the input against its domain constraints.
func (in Input) Validate() error {
	if in.NetMonthlyIncome <= 0 {
		return validation.NewParameterError("netMonthlyIncome", "> 0")
	}
	if in.ExistingMonthlyPayments < 0 {
		return validation.NewParameterError("existingMonthlyPayments", ">= 0")
	}
	if in.AnnualRatePercent < 0 {
		return validation.NewParameterError("annualRatePercent", ">= 0")
	}
	if in.DurationYears <= 0 {
		return validation.NewParameterError("durationYears", "> 0")
	}
	return nil
}

// Result holds the outcome of a borrowing-capacity estimate.
type Result struct {
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	AvailablePayment  float64 `json:"availablePayment"`
	MaxLoanAmount     float64 `json:"maxLoanAmount"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	DurationYears     int     `json:"durationYears"`
}

// Estimator computes borrowing capacity estimates.
type Estimator struct {
	logger *zap.Logger
}

// NewEstimator creates a new estimator instance
func NewEstimator(logger *zap.Logger) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{logger: logger}
}

// Estimate computes the maximum loan principal obtainable given net income
// and existing obligations. The payment ceiling is the fixed 33%
// debt-to-income ratio; the principal comes from inverting the same annuity
// formula the schedule computation uses, so feeding the result back into a
// schedule reproduces the available payment.
func (e *Estimator) Estimate(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	maxPayment := in.NetMonthlyIncome * constants.DebtToIncomeRatio
	available := mathutil.Max(0, maxPayment-in.ExistingMonthlyPayments)

	months := in.DurationYears * constants.MonthsPerYear
	var maxLoan float64
	if in.AnnualRatePercent == 0 {
		maxLoan = available * float64(months)
	} else {
		periodicRate := mathutil.MonthlyRate(in.AnnualRatePercent)
		maxLoan = available * (1 - math.Pow(1+periodicRate, -float64(months))) / periodicRate
	}

	e.logger.Debug(fmt.Sprintf("estimated borrowing capacity %.2f from available payment %.2f", maxLoan, available),
		zap.String("op", "capacity.Estimate"),
		zap.Float64("netMonthlyIncome", in.NetMonthlyIncome),
		zap.Int("durationYears", in.DurationYears),
	)

	return &Result{
		MaxMonthlyPayment: maxPayment,
		AvailablePayment:  available,
		MaxLoanAmount:     maxLoan,
		AnnualRatePercent: in.AnnualRatePercent,
		DurationYears:     in.DurationYears,
	}, nil
}
