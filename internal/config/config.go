// Package config defines the data structures related to configuration and
// includes functions for loading and resolving the config.
package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-planner/pkg/amortization"
	"github.com/iwvelando/loan-planner/pkg/capacity"
	"github.com/iwvelando/loan-planner/pkg/rates"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-planner.
type Configuration struct {
	Loans      []LoanScenario
	Capacities []CapacityScenario
	Rates      []RateEntry
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoanScenario is a named amortization request. When UseMarketRate is set
// the rate is defaulted from the configured rate table before computation.
type LoanScenario struct {
	Name                 string
	Principal            float64
	AnnualRatePercent    float64
	DurationYears        int
	DeferredMonths       int
	InsuranceRatePercent float64
	UseMarketRate        bool
}

// Parameters converts the scenario into engine input.
func (s LoanScenario) Parameters() amortization.LoanParameters {
	return amortization.LoanParameters{
		Principal:            s.Principal,
		AnnualRatePercent:    s.AnnualRatePercent,
		DurationYears:        s.DurationYears,
		DeferredMonths:       s.DeferredMonths,
		InsuranceRatePercent: s.InsuranceRatePercent,
	}
}

// CapacityScenario is a named borrowing-capacity request.
type CapacityScenario struct {
	Name                    string
	NetMonthlyIncome        float64
	ExistingMonthlyPayments float64
	AnnualRatePercent       float64
	DurationYears           int
	UseMarketRate           bool
}

// Input converts the scenario into engine input.
func (s CapacityScenario) Input() capacity.Input {
	return capacity.Input{
		NetMonthlyIncome:        s.NetMonthlyIncome,
		ExistingMonthlyPayments: s.ExistingMonthlyPayments,
		AnnualRatePercent:       s.AnnualRatePercent,
		DurationYears:           s.DurationYears,
	}
}

// RateEntry is one row of the market rate table.
type RateEntry struct {
	DurationYears int
	BestRate      float64
	AvgRate       float64
	UpdatedAt     string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// RateSource builds a static rate quote source from the configured table.
func (conf *Configuration) RateSource() (*rates.StaticSource, error) {
	quotes := make([]rates.Quote, 0, len(conf.Rates))
	for _, entry := range conf.Rates {
		quote := rates.Quote{
			DurationYears: entry.DurationYears,
			BestRate:      entry.BestRate,
			AvgRate:       entry.AvgRate,
		}
		if entry.UpdatedAt != "" {
			updated, err := parseUpdatedAt(entry.UpdatedAt)
			if err != nil {
				return nil, fmt.Errorf("invalid updatedAt for %d-year rate: %w", entry.DurationYears, err)
			}
			quote.UpdatedAt = updated
		}
		quotes = append(quotes, quote)
	}
	return rates.NewStaticSource(quotes), nil
}

// ApplyMarketRates resolves every scenario flagged with useMarketRate by
// defaulting its rate from the quote source's average rate.
func (conf *Configuration) ApplyMarketRates(source rates.Source) error {
	for i := range conf.Loans {
		if !conf.Loans[i].UseMarketRate {
			continue
		}
		quote, err := source.CurrentRate(conf.Loans[i].DurationYears)
		if err != nil {
			return fmt.Errorf("no market rate for loan scenario %s: %w", conf.Loans[i].Name, err)
		}
		conf.Loans[i].AnnualRatePercent = quote.AvgRate
	}
	for i := range conf.Capacities {
		if !conf.Capacities[i].UseMarketRate {
			continue
		}
		quote, err := source.CurrentRate(conf.Capacities[i].DurationYears)
		if err != nil {
			return fmt.Errorf("no market rate for capacity scenario %s: %w", conf.Capacities[i].Name, err)
		}
		conf.Capacities[i].AnnualRatePercent = quote.AvgRate
	}
	return nil
}

// ValidateConfiguration checks for suspicious settings and returns warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Loans) == 0 && len(conf.Capacities) == 0 {
		warnings = append(warnings, "no loan or capacity scenarios configured; nothing to compute")
	}
	for _, loan := range conf.Loans {
		if loan.UseMarketRate && loan.AnnualRatePercent != 0 {
			warnings = append(warnings,
				fmt.Sprintf("loan scenario %s sets both useMarketRate and annualRatePercent; the market rate wins", loan.Name))
		}
		if loan.UseMarketRate && len(conf.Rates) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("loan scenario %s requests a market rate but no rates are configured", loan.Name))
		}
	}
	for _, cap := range conf.Capacities {
		if cap.UseMarketRate && len(conf.Rates) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("capacity scenario %s requests a market rate but no rates are configured", cap.Name))
		}
	}

	return warnings
}

func parseUpdatedAt(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
