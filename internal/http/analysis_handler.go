package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"log-insights/internal/analyzers"

	"github.com/go-chi/chi/v5"
)

const (
	queryThreshold = "threshold"
	querySource    = "source"
	paramReportID  = "reportID"

	defaultUploadSource = "upload"
)

type createAnalysisHandler struct {
	analysisService  analyzers.AnalysisService
	defaultThreshold int64
}

func NewCreateAnalysisHandler(analysisService analyzers.AnalysisService, defaultThreshold int64) AppHttpHandler {
	return &createAnalysisHandler{
		analysisService:  analysisService,
		defaultThreshold: defaultThreshold,
	}
}

// Handle processes POST /analyses. The body is the raw access log.
func (h *createAnalysisHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	threshold, err := h.threshold(r.URL.Query())
	if err != nil {
		return err
	}

	source := strings.TrimSpace(r.URL.Query().Get(querySource))
	if source == "" {
		source = defaultUploadSource
	}

	report, err := h.analysisService.Analyze(r.Context(), source, r.Body, analyzers.AnalyzeOptions{Threshold: threshold})
	if err != nil {
		return err
	}

	w.Header().Set(headerLocation, "/analyses/"+report.ReportID)
	writeJSON(w, http.StatusCreated, report)
	return nil
}

func (h *createAnalysisHandler) threshold(query url.Values) (int64, error) {
	raw := strings.TrimSpace(query.Get(queryThreshold))
	if raw == "" {
		return h.defaultThreshold, nil
	}
	threshold, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errInvalidQueryParam(queryThreshold, raw, err)
	}
	return threshold, nil
}

type getReportHandler struct {
	analysisService analyzers.AnalysisService
}

func NewGetReportHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &getReportHandler{analysisService: analysisService}
}

// Handle processes GET /analyses/{reportID}.
func (h *getReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	report, err := h.analysisService.GetReport(r.Context(), chi.URLParam(r, paramReportID))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, report)
	return nil
}
