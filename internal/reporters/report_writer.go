package reporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"log-insights/internal/models"
)

// ReportWriter renders a report to w.
type ReportWriter interface {
	Write(w io.Writer, report *models.Report) error
}

// WriteFile renders report into path. The file is written next to its final
// location and renamed into place, so a failed render leaves no partial file.
func WriteFile(path string, writer ReportWriter, report *models.Report) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp report file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err = writer.Write(tmp, report); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp report file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
