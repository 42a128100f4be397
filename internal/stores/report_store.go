package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"log-insights/internal/models"
	"log-insights/internal/shared/filestorages"
)

var (
	ErrReportAlreadyExist = errors.New("report already exists")
	ErrReportNotFound     = errors.New("report not found")
)

// ReportStore persists finished reports. Reports are write-once: Put on an
// existing id fails with ErrReportAlreadyExist instead of replacing it.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Put(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, reportID string) (*models.Report, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage, dir: "reports"}
}

func (s *reportStore) Put(ctx context.Context, report *models.Report) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, s.getKey(report.ReportID), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrReportAlreadyExist
		}
		return fmt.Errorf("failed to put report: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, reportID string) (*models.Report, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(reportID))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

func (s *reportStore) getKey(reportID string) string {
	return fmt.Sprintf("%s/%s.json", s.dir, reportID)
}
