package export

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hemp-kart/internal/model"

	"github.com/rs/zerolog"
)

// fileExporter implements Exporter by writing gzipped JSON to a local
// directory. Used when S3 export is disabled.
type fileExporter struct {
	dir    string
	logger zerolog.Logger
}

// NewFileExporter creates a new filesystem-based analytics exporter.
func NewFileExporter(dir string, logger zerolog.Logger) Exporter {
	return &fileExporter{
		dir:    dir,
		logger: logger.With().Str("component", "file-exporter").Logger(),
	}
}

// Export writes the summary as gzipped JSON under dir/key.
func (e *fileExporter) Export(ctx context.Context, key string, summary []model.CodeSummary) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", e.dir, err)
	}

	path := filepath.Join(e.dir, key)

	file, err := os.Create(path)
	if err != nil {
		e.logger.Error().Err(err).Str("path", path).Msg("failed to create export file")
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if err := json.NewEncoder(gzipWriter).Encode(summary); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to encode export payload: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalise export file %s: %w", path, err)
	}

	e.logger.Info().
		Str("path", path).
		Int("groups", len(summary)).
		Msg("analytics summary exported to file")

	return nil
}
