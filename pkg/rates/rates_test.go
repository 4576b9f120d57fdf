package rates

import (
	"errors"
	"testing"
	"time"

	"github.com/iwvelando/loan-planner/pkg/validation"
)

func testQuotes() []Quote {
	updated := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return []Quote{
		{DurationYears: 10, BestRate: 2.85, AvgRate: 3.05, UpdatedAt: updated},
		{DurationYears: 15, BestRate: 3.05, AvgRate: 3.20, UpdatedAt: updated},
		{DurationYears: 20, BestRate: 3.15, AvgRate: 3.35, UpdatedAt: updated},
		{DurationYears: 25, BestRate: 3.30, AvgRate: 3.55, UpdatedAt: updated},
	}
}

func TestStaticSourceCurrentRate(t *testing.T) {
	source := NewStaticSource(testQuotes())

	tests := []struct {
		name             string
		durationYears    int
		expectedDuration int
	}{
		{"Exact match", 20, 20},
		{"Shortest duration", 10, 10},
		{"Between entries rounds to nearest", 24, 25},
		{"Tie prefers shorter duration", 12, 10},
		{"Beyond table clamps to longest", 40, 25},
		{"Below table clamps to shortest", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := source.CurrentRate(tt.durationYears)
			if err != nil {
				t.Fatalf("CurrentRate(%d) error = %v", tt.durationYears, err)
			}
			if quote.DurationYears != tt.expectedDuration {
				t.Errorf("CurrentRate(%d) matched duration %d, expected %d",
					tt.durationYears, quote.DurationYears, tt.expectedDuration)
			}
		})
	}
}

func TestStaticSourceInvalidDuration(t *testing.T) {
	source := NewStaticSource(testQuotes())

	_, err := source.CurrentRate(0)
	if err == nil {
		t.Fatalf("CurrentRate(0) returned no error")
	}

	var paramErr *validation.ParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error %v is not a ParameterError", err)
	}
	if paramErr.Param != "durationYears" {
		t.Errorf("error names parameter %q, expected durationYears", paramErr.Param)
	}
}

func TestStaticSourceEmptyTable(t *testing.T) {
	source := NewStaticSource(nil)

	if _, err := source.CurrentRate(20); err == nil {
		t.Errorf("CurrentRate on empty table returned no error")
	}
}
