package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"log-insights/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
)

func TestAppResponseWriter_ErrorCode(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	assert.Equal(t, "", appWriter.ErrorCode())

	appWriter.SetServiceError(svcerrors.NewInvalidArgumentError("HTTP_1000", "invalid query parameter", nil))
	assert.Equal(t, "HTTP_1000", appWriter.ErrorCode())

	appWriter.SetServiceError(nil)
	assert.Equal(t, "", appWriter.ErrorCode())
}

func TestStatusAndErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nothing written defaults to 200", func(t *testing.T) {
		t.Parallel()
		status, errorCode := statusAndErrorCode(newAppResponseWriter(httptest.NewRecorder(), 1))
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, errorCode)
	})

	t.Run("status survives later writes", func(t *testing.T) {
		t.Parallel()
		rr := httptest.NewRecorder()
		appWriter := newAppResponseWriter(rr, 1)
		appWriter.WriteHeader(http.StatusCreated)
		_, _ = appWriter.Write([]byte(`{}`))

		status, _ := statusAndErrorCode(appWriter)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, `{}`, rr.Body.String())
	})

	t.Run("plain writer", func(t *testing.T) {
		t.Parallel()
		status, errorCode := statusAndErrorCode(httptest.NewRecorder())
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, errorCode)
	})
}
