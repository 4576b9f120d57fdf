// Package rates defines the market rate quote contract consumed by callers
// when defaulting a loan's interest rate.
package rates

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-planner/pkg/validation"
)

// Quote is an externally supplied best/average interest rate for a given
// loan duration. The engine treats quotes as defaults, never authoritative;
// callers may always override the rate.
type Quote struct {
	DurationYears int       `json:"durationYears"`
	BestRate      float64   `json:"bestRate"`
	AvgRate       float64   `json:"avgRate"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Source supplies the current market rate quote for a requested duration.
type Source interface {
	CurrentRate(durationYears int) (Quote, error)
}

// StaticSource serves quotes from a fixed table, typically loaded from
// configuration. Lookups match the nearest available duration when the
// requested one has no exact entry.
type StaticSource struct {
	quotes []Quote
}

// NewStaticSource creates a source backed by the given quote table.
func NewStaticSource(quotes []Quote) *StaticSource {
	return &StaticSource{quotes: quotes}
}

// CurrentRate returns the quote whose duration is closest to the requested
// one, preferring the shorter duration on ties.
func (s *StaticSource) CurrentRate(durationYears int) (Quote, error) {
	if durationYears <= 0 {
		return Quote{}, validation.NewParameterError("durationYears", "> 0")
	}
	if len(s.quotes) == 0 {
		return Quote{}, fmt.Errorf("no rate quotes available")
	}

	best := s.quotes[0]
	bestDistance := abs(best.DurationYears - durationYears)
	for _, q := range s.quotes[1:] {
		distance := abs(q.DurationYears - durationYears)
		if distance < bestDistance ||
			(distance == bestDistance && q.DurationYears < best.DurationYears) {
			best = q
			bestDistance = distance
		}
	}
	return best, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
