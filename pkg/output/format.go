// Package output provides utilities for formatting and displaying
// computation results.
package output

import (
	"fmt"

	"github.com/iwvelando/loan-planner/internal/report"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LoanResult pairs a named loan scenario with its computed report.
type LoanResult struct {
	Name   string
	Report *report.Amortization
}

// CapacityResult pairs a named capacity scenario with its computed report.
type CapacityResult struct {
	Name   string
	Report *report.Capacity
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(loans []LoanResult, capacities []CapacityResult) {
	p := message.NewPrinter(language.English)

	for _, result := range loans {
		rep := result.Report
		fmt.Printf("--- Amortization for scenario %s ---\n", result.Name)
		_, _ = p.Printf("Monthly payment: $%.2f", rep.MonthlyPayment)
		if rep.MonthlyPaymentDuringDeferral > 0 {
			_, _ = p.Printf(" (deferred phase: $%.2f)", rep.MonthlyPaymentDuringDeferral)
		}
		fmt.Printf("\n")
		_, _ = p.Printf("Total interest: $%.2f | Total insurance: $%.2f | Total repaid: $%.2f\n",
			rep.TotalInterestCost, rep.TotalInsuranceCost, rep.TotalRepaid)
		fmt.Printf("Month | Payment       | Interest      | Capital       | Remaining\n")
		fmt.Printf("_____ | _____________ | _____________ | _____________ | _____________\n")
		for _, row := range rep.DisplayRows {
			marker := ""
			if row.IsDeferred {
				marker = " (deferred through this month)"
			}
			_, _ = p.Printf("%5d | $%.2f | $%.2f | $%.2f | $%.2f%s\n",
				row.MonthIndex, row.Payment, row.InterestPortion, row.CapitalPortion,
				row.RemainingPrincipal, marker)
		}
		fmt.Printf("\n")
	}

	for _, result := range capacities {
		rep := result.Report
		fmt.Printf("--- Borrowing capacity for scenario %s ---\n", result.Name)
		_, _ = p.Printf("Max monthly payment: $%.2f | Available: $%.2f\n",
			rep.MaxMonthlyPayment, rep.AvailablePayment)
		_, _ = p.Printf("Max loan amount: $%.2f at %.2f%% over %d years\n",
			rep.MaxLoanAmount, rep.AnnualRatePercent, rep.DurationYears)
		fmt.Printf("\n")
	}
}

// CsvFormat outputs in comma-separated value format, one line per yearly
// summary bucket per loan scenario followed by capacity results.
func CsvFormat(loans []LoanResult, capacities []CapacityResult) {
	if len(loans) > 0 {
		fmt.Printf("\"scenario\",\"year\",\"capitalPaid\",\"interestPaid\",\"remainingPrincipal\"\n")
		for _, result := range loans {
			for _, summary := range result.Report.YearlySummary {
				fmt.Printf("\"%s\",\"%d\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
					result.Name, summary.Year, summary.CapitalPaid, summary.InterestPaid,
					summary.RemainingPrincipalAtYearEnd)
			}
		}
	}
	if len(capacities) > 0 {
		fmt.Printf("\"scenario\",\"maxMonthlyPayment\",\"availablePayment\",\"maxLoanAmount\"\n")
		for _, result := range capacities {
			fmt.Printf("\"%s\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
				result.Name, result.Report.MaxMonthlyPayment, result.Report.AvailablePayment,
				result.Report.MaxLoanAmount)
		}
	}
}
