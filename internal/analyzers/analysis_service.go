package analyzers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"log-insights/internal/aggregators"
	"log-insights/internal/geolocators"
	"log-insights/internal/models"
	"log-insights/internal/shared/loggers"
	"log-insights/internal/shared/metrics"
	"log-insights/internal/shared/svcerrors"
	"log-insights/internal/shared/ulid"
	"log-insights/internal/shared/validators"
	"log-insights/internal/stores"
)

const DefaultThreshold int64 = 10

// AnalyzeOptions tunes a single analysis.
type AnalyzeOptions struct {
	// Threshold is the failed-login count an address must strictly exceed to be suspicious.
	Threshold int64 `validate:"gte=0"`
}

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// AnalyzeFile analyzes the access log stored at path.
	AnalyzeFile(ctx context.Context, path string, opts AnalyzeOptions) (*models.Report, error)
	// Analyze aggregates r, resolves every address it saw and stores the resulting report.
	// source labels the input in the report.
	Analyze(ctx context.Context, source string, r io.Reader, opts AnalyzeOptions) (*models.Report, error)
	// GetReport returns a previously stored report.
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
}

type analysisService struct {
	aggregator  aggregators.LogAggregator
	enricher    geolocators.LocationEnricher
	reportStore stores.ReportStore
	validate    *validators.Validate
}

func NewAnalysisService(aggregator aggregators.LogAggregator, enricher geolocators.LocationEnricher, reportStore stores.ReportStore) AnalysisService {
	return &analysisService{
		aggregator:  aggregator,
		enricher:    enricher,
		reportStore: reportStore,
		validate:    validators.New(),
	}
}

func (s *analysisService) AnalyzeFile(ctx context.Context, path string, opts AnalyzeOptions) (*models.Report, error) {
	file, err := openLog(path)
	if err != nil {
		svcErr := errStreamOpenFailed(path, err)
		recordAnalysis(svcErr, time.Now())
		return nil, svcErr
	}
	defer file.Close()

	return s.Analyze(ctx, path, file, opts)
}

func openLog(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return file, nil
}

func (s *analysisService) Analyze(ctx context.Context, source string, r io.Reader, opts AnalyzeOptions) (*models.Report, error) {
	start := time.Now()
	report, err := s.analyze(ctx, source, r, opts)
	recordAnalysis(err, start)
	return report, err
}

func (s *analysisService) analyze(ctx context.Context, source string, r io.Reader, opts AnalyzeOptions) (*models.Report, error) {
	if r == nil {
		return nil, errValidationFailed("empty input log", nil)
	}
	if err := s.validate.Struct(opts); err != nil {
		return nil, errValidationFailed(fmt.Sprintf("invalid analysis options: threshold must be >= 0, got %d", opts.Threshold), err)
	}

	reportID := ulid.NewULID()
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldReportID, reportID).
		Str(loggers.FieldSource, source).
		Logger()
	ctx = logger.WithContext(ctx)
	logger.Debug().Int64("threshold", opts.Threshold).Msg("started analysis")

	result, err := s.aggregator.Aggregate(ctx, r)
	if err != nil {
		return nil, errInternalStreamReadFailed(err)
	}

	addresses := make([]string, 0, len(result.RequestsByAddress()))
	for _, p := range result.RequestsByAddress() {
		addresses = append(addresses, p.Key)
	}
	locations := s.enricher.Enrich(ctx, addresses)

	report := models.NewReport(reportID, source, time.Now(), opts.Threshold, result, locations)

	if err := s.reportStore.Put(ctx, report); err != nil {
		if errors.Is(err, stores.ErrReportAlreadyExist) {
			return nil, errReportAlreadyExist(reportID, err)
		}
		return nil, errInternalReportStoreFailed(err)
	}

	logger.Info().
		Int64(loggers.FieldLinesRead, report.LinesRead).
		Int("addresses", len(report.RequestsByAddress)).
		Int("suspicious_addresses", len(report.SuspiciousAddresses)).
		Msg("finished analysis")
	return report, nil
}

func (s *analysisService) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	if !ulid.IsValid(reportID) {
		return nil, errValidationFailed(fmt.Sprintf("invalid report id %q", reportID), nil)
	}

	report, err := s.reportStore.Get(ctx, reportID)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return nil, errReportNotFound(reportID, err)
		}
		return nil, errInternalReportStoreFailed(err)
	}
	return report, nil
}

func recordAnalysis(err error, start time.Time) {
	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricAnalysesTotal.WithLabelValues(code).Inc()
	metricAnalysisDuration.WithLabelValues(code).Observe(time.Since(start).Seconds())
}
