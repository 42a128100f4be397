package stores

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"log-insights/internal/models"
	"log-insights/internal/shared/filestorages"
	"log-insights/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReport() *models.Report {
	return &models.Report{
		ReportID:    "01JA2Y0V6S5Q1T8W0C4ZB3KX7M",
		Source:      "sample.log",
		GeneratedAt: time.Date(2026, 10, 18, 9, 12, 44, 0, time.UTC),
		Threshold:   10,
		LinesRead:   3,
		MostAccessedEndpoint: &models.EndpointRow{
			Endpoint:    "/index.html",
			AccessCount: 2,
		},
		RequestsByAddress: []models.AddressRow{
			{Address: "192.168.1.1", RequestCount: 2, City: "Unknown", Country: "Unknown"},
		},
		RequestsByEndpoint:  []models.EndpointRow{{Endpoint: "/index.html", AccessCount: 2}},
		SuspiciousAddresses: []models.SuspiciousRow{},
		RequestsByHour:      []models.HourRow{{Hour: 13, RequestCount: 2}},
		RequestsByUserAgent: []models.UserAgentRow{},
	}
}

type trackingReadCloser struct {
	io.Reader
	closed bool
}

func (r *trackingReadCloser) Close() error {
	r.closed = true
	return nil
}

func TestReportStore_Put_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage)

	ctx := context.Background()
	report := newTestReport()
	expectedJSON, err := json.Marshal(report)
	require.NoError(t, err)

	mockFileStorage.EXPECT().
		Put(ctx, "reports/01JA2Y0V6S5Q1T8W0C4ZB3KX7M.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.JSONEq(t, string(expectedJSON), string(data))
			return &filestorages.PutResult{FileKey: key}, nil
		})

	assert.NoError(t, store.Put(ctx, report))
}

func TestReportStore_Put_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		storageErr error
		assertErr  func(t *testing.T, err error)
	}{
		{
			name:       "duplicate id",
			storageErr: filestorages.ErrFileAlreadyExists,
			assertErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrReportAlreadyExist)
			},
		},
		{
			name:       "storage failure",
			storageErr: errors.New("disk full"),
			assertErr: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to put report")
				assert.ErrorContains(t, err, "disk full")
				assert.NotErrorIs(t, err, ErrReportAlreadyExist)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockFileStorage := mocks.NewMockFileStorage(ctrl)
			mockFileStorage.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.storageErr)

			err := NewReportStore(mockFileStorage).Put(context.Background(), newTestReport())
			require.Error(t, err)
			tt.assertErr(t, err)
		})
	}
}

func TestReportStore_Get_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage)

	report := newTestReport()
	data, err := json.Marshal(report)
	require.NoError(t, err)
	body := &trackingReadCloser{Reader: strings.NewReader(string(data))}

	mockFileStorage.EXPECT().Get(gomock.Any(), "reports/01JA2Y0V6S5Q1T8W0C4ZB3KX7M.json").Return(body, nil)

	got, err := store.Get(context.Background(), report.ReportID)
	require.NoError(t, err)
	assert.Equal(t, report, got)
	assert.True(t, body.closed)
}

func TestReportStore_Get_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        io.ReadCloser
		storageErr  error
		expectedIs  error
		expectedMsg string
	}{
		{
			name:       "not found",
			storageErr: filestorages.ErrFileNotFound,
			expectedIs: ErrReportNotFound,
		},
		{
			name:        "storage failure",
			storageErr:  errors.New("permission denied"),
			expectedMsg: "failed to get report",
		},
		{
			name:        "corrupt file",
			body:        io.NopCloser(strings.NewReader("{not json")),
			expectedMsg: "failed to unmarshal report",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockFileStorage := mocks.NewMockFileStorage(ctrl)
			mockFileStorage.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.body, tt.storageErr)

			got, err := NewReportStore(mockFileStorage).Get(context.Background(), "01JA2Y0V6S5Q1T8W0C4ZB3KX7M")
			assert.Nil(t, got)
			require.Error(t, err)
			if tt.expectedIs != nil {
				assert.ErrorIs(t, err, tt.expectedIs)
			}
			if tt.expectedMsg != "" {
				assert.ErrorContains(t, err, tt.expectedMsg)
			}
		})
	}
}

func TestReportStore_RoundTripOnDisk(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := NewReportStore(fileStorage)

	ctx := context.Background()
	report := newTestReport()

	require.NoError(t, store.Put(ctx, report))
	assert.ErrorIs(t, store.Put(ctx, report), ErrReportAlreadyExist)

	got, err := store.Get(ctx, report.ReportID)
	require.NoError(t, err)
	assert.Equal(t, report, got)

	_, err = store.Get(ctx, "01JA2Y0V6S5Q1T8W0C4ZB3KX7N")
	assert.ErrorIs(t, err, ErrReportNotFound)
}
