// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-planner/pkg/output"
)

// FindLoanResult finds a loan scenario result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindLoanResult(results []output.LoanResult, name string) *output.LoanResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindCapacityResult finds a capacity scenario result by name in the results
// slice. Returns a pointer to the result if found, nil otherwise.
func FindCapacityResult(results []output.CapacityResult, name string) *output.CapacityResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
