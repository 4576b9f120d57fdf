package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iwvelando/loan-planner/internal/cache"
	"github.com/iwvelando/loan-planner/internal/config"
	"github.com/iwvelando/loan-planner/internal/report"
	"github.com/iwvelando/loan-planner/internal/server"
	"github.com/iwvelando/loan-planner/pkg/amortization"
	"github.com/iwvelando/loan-planner/pkg/capacity"
	"github.com/iwvelando/loan-planner/pkg/constants"
	"github.com/iwvelando/loan-planner/pkg/output"
	"github.com/iwvelando/loan-planner/pkg/rates"
	"github.com/iwvelando/loan-planner/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API instead of computing configured scenarios")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	rateSource, err := conf.RateSource()
	if err != nil {
		logger.Fatal("failed to build rate source",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *serve {
		runServer(logger, *serverConfigLocation, rateSource)
		return
	}

	// Resolve scenarios that default their rate from the market table.
	err = conf.ApplyMarketRates(rateSource)
	if err != nil {
		logger.Fatal("failed to apply market rates",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	loanResults, capacityResults, err := computeScenarios(logger, conf)
	if err != nil {
		logger.Fatal("failed to compute scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(loanResults, capacityResults)
	case constants.OutputFormatCSV:
		output.CsvFormat(loanResults, capacityResults)
	}
}

// computeScenarios runs every configured loan and capacity scenario through
// the engine.
func computeScenarios(logger *zap.Logger, conf *config.Configuration) ([]output.LoanResult, []output.CapacityResult, error) {
	generator := amortization.NewScheduleGenerator(logger)
	estimator := capacity.NewEstimator(logger)

	var loanResults []output.LoanResult
	for _, scenario := range conf.Loans {
		params := scenario.Parameters()
		schedule, err := generator.ComputeSchedule(params)
		if err != nil {
			return nil, nil, fmt.Errorf("loan scenario %s: %w", scenario.Name, err)
		}
		loanResults = append(loanResults, output.LoanResult{
			Name:   scenario.Name,
			Report: report.BuildAmortization(params, schedule),
		})
	}

	var capacityResults []output.CapacityResult
	for _, scenario := range conf.Capacities {
		result, err := estimator.Estimate(scenario.Input())
		if err != nil {
			return nil, nil, fmt.Errorf("capacity scenario %s: %w", scenario.Name, err)
		}
		capacityResults = append(capacityResults, output.CapacityResult{
			Name:   scenario.Name,
			Report: report.BuildCapacity(result),
		})
	}

	return loanResults, capacityResults, nil
}

func runServer(logger *zap.Logger, serverConfigLocation string, rateSource rates.Source) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var responseCache cache.Cache
	switch serverConf.Cache.Backend {
	case "redis":
		responseCache = cache.NewRedis(serverConf.Cache.RedisAddress, serverConf.Cache.TTL())
	default:
		responseCache = cache.NewMemory(serverConf.Cache.TTL())
	}

	limiter := server.NewRateLimiter(serverConf.RateLimit.Requests, serverConf.RateLimit.Window())
	defer limiter.Stop()

	httpServer := &http.Server{
		Addr:         serverConf.Address,
		Handler:      server.NewHandler(logger, serverConf, responseCache, rateSource, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("serving engine API",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-quit:
		logger.Info("shutting down server",
			zap.String("op", "main"),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
