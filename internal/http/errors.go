package http

import (
	"fmt"
	"net/http"

	"log-insights/internal/shared/svcerrors"
)

// HTTP transport errors
const (
	codeInvalidQueryParam = "HTTP_1000"
	codeBodyTooLarge      = "HTTP_1001"
)

// errInvalidQueryParam returns an error for a malformed query parameter.
func errInvalidQueryParam(name, value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam, fmt.Sprintf("invalid query parameter %s=%q", name, value), cause)
}

// errBodyTooLarge returns an error when the request body exceeds the configured limit.
func errBodyTooLarge(limit int64, cause error) *svcerrors.ServiceError {
	svcErr := svcerrors.NewInvalidArgumentError(codeBodyTooLarge, fmt.Sprintf("request body too large: must be <= %d bytes", limit), cause)
	svcErr.HttpStatusCode = http.StatusRequestEntityTooLarge
	return svcErr
}
