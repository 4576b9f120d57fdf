package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-planner/pkg/rates"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

const sampleConfig = `
logging:
  level: debug
  format: console
output:
  format: csv
rates:
  - durationYears: 15
    bestRate: 3.05
    avgRate: 3.20
    updatedAt: "2026-08-01"
  - durationYears: 20
    bestRate: 3.15
    avgRate: 3.35
    updatedAt: "2026-08-01T09:30:00Z"
loans:
  - name: house
    principal: 200000
    durationYears: 20
    insuranceRatePercent: 0.34
    useMarketRate: true
  - name: renovation
    principal: 40000
    annualRatePercent: 4.1
    durationYears: 7
capacities:
  - name: household
    netMonthlyIncome: 3500
    durationYears: 20
    useMarketRate: true
`

func TestLoadConfiguration(t *testing.T) {
	path := writeTestConfig(t, sampleConfig)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config: %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("output format = %q, expected csv", conf.Output.Format)
	}
	if len(conf.Loans) != 2 {
		t.Fatalf("got %d loan scenarios, expected 2", len(conf.Loans))
	}
	if conf.Loans[0].Name != "house" || !conf.Loans[0].UseMarketRate {
		t.Errorf("unexpected first loan scenario: %+v", conf.Loans[0])
	}
	if conf.Loans[1].AnnualRatePercent != 4.1 {
		t.Errorf("renovation rate = %v, expected 4.1", conf.Loans[1].AnnualRatePercent)
	}
	if len(conf.Capacities) != 1 {
		t.Fatalf("got %d capacity scenarios, expected 1", len(conf.Capacities))
	}
	if len(conf.Rates) != 2 {
		t.Fatalf("got %d rate entries, expected 2", len(conf.Rates))
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("LoadConfiguration on a missing file returned no error")
	}
}

func TestRateSource(t *testing.T) {
	path := writeTestConfig(t, sampleConfig)
	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	source, err := conf.RateSource()
	if err != nil {
		t.Fatalf("RateSource() error = %v", err)
	}

	quote, err := source.CurrentRate(20)
	if err != nil {
		t.Fatalf("CurrentRate() error = %v", err)
	}
	if quote.AvgRate != 3.35 {
		t.Errorf("AvgRate = %v, expected 3.35", quote.AvgRate)
	}
	if quote.UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt not parsed")
	}
}

func TestRateSourceInvalidTimestamp(t *testing.T) {
	path := writeTestConfig(t, `
rates:
  - durationYears: 20
    avgRate: 3.35
    updatedAt: "last tuesday"
`)
	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if _, err := conf.RateSource(); err == nil {
		t.Errorf("RateSource() accepted an unparseable updatedAt")
	}
}

func TestApplyMarketRates(t *testing.T) {
	path := writeTestConfig(t, sampleConfig)
	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	source, err := conf.RateSource()
	if err != nil {
		t.Fatalf("RateSource() error = %v", err)
	}

	if err := conf.ApplyMarketRates(source); err != nil {
		t.Fatalf("ApplyMarketRates() error = %v", err)
	}

	if conf.Loans[0].AnnualRatePercent != 3.35 {
		t.Errorf("house rate = %v, expected market 3.35", conf.Loans[0].AnnualRatePercent)
	}
	// Scenarios with explicit rates stay untouched.
	if conf.Loans[1].AnnualRatePercent != 4.1 {
		t.Errorf("renovation rate = %v, expected explicit 4.1", conf.Loans[1].AnnualRatePercent)
	}
	if conf.Capacities[0].AnnualRatePercent != 3.35 {
		t.Errorf("household rate = %v, expected market 3.35", conf.Capacities[0].AnnualRatePercent)
	}
}

func TestApplyMarketRatesWithEmptyTable(t *testing.T) {
	conf := &Configuration{
		Loans: []LoanScenario{
			{Name: "house", Principal: 200000, DurationYears: 20, UseMarketRate: true},
		},
	}

	if err := conf.ApplyMarketRates(rates.NewStaticSource(nil)); err == nil {
		t.Errorf("ApplyMarketRates() with no quotes returned no error")
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{}
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Errorf("empty config produced %d warnings, expected 1", len(warnings))
	}

	conf = &Configuration{
		Loans: []LoanScenario{
			{Name: "house", Principal: 200000, AnnualRatePercent: 3.0, DurationYears: 20, UseMarketRate: true},
		},
	}
	warnings = conf.ValidateConfiguration()
	// Both an explicit rate alongside useMarketRate and a missing rate table.
	if len(warnings) != 2 {
		t.Errorf("got %d warnings, expected 2: %v", len(warnings), warnings)
	}
}
