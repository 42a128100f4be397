package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"log-insights/internal/aggregators"
	"log-insights/internal/analyzers"
	"log-insights/internal/geolocators"
	internalhttp "log-insights/internal/http"
	"log-insights/internal/reporters"
	"log-insights/internal/shared/configs"
	"log-insights/internal/shared/filestorages"
	"log-insights/internal/shared/loggers"
	"log-insights/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config          *configs.Config
	appLogger       loggers.Logger
	analysisService analyzers.AnalysisService
	server          *http.Server
	stdout          io.Writer
}

// New creates and initializes a new App instance. Console output and charts go to stdout.
func New(config *configs.Config, stdout io.Writer) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "log-insights").
		Logger()

	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	reportStore := stores.NewReportStore(fileStorage)

	resolver, err := geolocators.NewLocationResolver(
		config.Geolocation.Provider,
		time.Duration(config.Geolocation.Timeout)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize geolocation: %w", err)
	}
	enricher := geolocators.NewLocationEnricher(resolver, config.Geolocation.Workers)

	analysisService := analyzers.NewAnalysisService(aggregators.NewLogAggregator(), enricher, reportStore)

	app := &App{
		config:          config,
		appLogger:       appLogger,
		analysisService: analysisService,
		stdout:          stdout,
	}

	if config.Serve {
		httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
		router := internalhttp.NewRouter(analysisService, httpLogger, internalhttp.RouterConfig{
			DefaultThreshold: config.Analysis.Threshold,
			MaxBodyBytes:     config.Server.MaxBodyBytes,
		})

		app.server = &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
			ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
			WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
			IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
		}
	}

	return app, nil
}

// Run performs a single analysis of the configured input and emits the console
// report, the charts and the CSV file. Nothing is written when the analysis fails.
func (app *App) Run(ctx context.Context) error {
	cliLogger := app.appLogger.With().Str(loggers.FieldComponent, "cli").Logger()
	ctx = cliLogger.WithContext(ctx)

	report, err := app.analysisService.AnalyzeFile(ctx, app.config.Analysis.InputPath, analyzers.AnalyzeOptions{
		Threshold: app.config.Analysis.Threshold,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if app.config.Report.Console {
		if err := reporters.NewConsoleWriter().Write(app.stdout, report); err != nil {
			return err
		}
	}

	if app.config.Report.Chart {
		if _, err := io.WriteString(app.stdout, "\n"); err != nil {
			return err
		}
		if err := reporters.NewChartWriter(reporters.DefaultChartWidth).Write(app.stdout, report); err != nil {
			return err
		}
	}

	if csvPath := app.config.Report.CSVPath; csvPath != "" {
		if err := reporters.WriteFile(csvPath, reporters.NewCSVWriter(), report); err != nil {
			return fmt.Errorf("failed to write csv report: %w", err)
		}
		cliLogger.Info().
			Str(loggers.FieldReportID, report.ReportID).
			Str("csv_path", csvPath).
			Msg("csv report written")
	}

	return nil
}

// Start starts the HTTP server in a blocking manner. It requires serve mode.
func (app *App) Start() error {
	if app.server == nil {
		return fmt.Errorf("server mode is disabled")
	}

	app.appLogger.Info().
		Msgf("Starting log-insights service on port %d (log_level=%s, file_storage_root_dir=%s, geolocation=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Geolocation.Provider)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (app *App) Shutdown(ctx context.Context) error {
	if app.server == nil {
		return nil
	}

	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}
