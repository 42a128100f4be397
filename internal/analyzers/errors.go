package analyzers

import (
	"fmt"

	"log-insights/internal/shared/svcerrors"
)

// AnalysisService errors
const (
	codeValidationFailed   = "ANL_1000"
	codeStreamOpenFailed   = "ANL_1001"
	codeReportNotFound     = "ANL_1002"
	codeReportAlreadyExist = "ANL_1003"

	codeInternalStreamReadFailed  = "ANL_9000"
	codeInternalReportStoreFailed = "ANL_9001"
)

// errValidationFailed returns an error for invalid analysis options or identifiers.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errStreamOpenFailed returns an error when the input log cannot be opened.
func errStreamOpenFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeStreamOpenFailed, fmt.Sprintf("cannot open input log %q", path), cause)
}

// errReportNotFound returns an error when no report is stored under the requested id.
func errReportNotFound(reportID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("report %s not found", reportID), cause)
}

// errReportAlreadyExist returns an error when a report id collides with a stored report.
func errReportAlreadyExist(reportID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeReportAlreadyExist, fmt.Sprintf("report %s already exists", reportID), cause)
}

// errInternalStreamReadFailed returns an error when the log stream fails mid-pass.
func errInternalStreamReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStreamReadFailed, fmt.Errorf("streamReadFailed: %w", cause))
}

// errInternalReportStoreFailed returns an error when a report store operation fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
