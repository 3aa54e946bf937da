package export

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hemp-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExporter_Export(t *testing.T) {
	logger := zerolog.Nop()
	dir := t.TempDir()

	summary := []model.CodeSummary{
		{
			Code:          "HEMP20",
			Uses:          3,
			SubtotalCents: 30000,
			DiscountCents: 6000,
			TotalCents:    24000,
			LastUsedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			TopItems: []model.ItemCount{
				{Name: "THCA Flower 3.5g", Qty: 4},
			},
		},
	}

	exporter := NewFileExporter(dir, logger)
	err := exporter.Export(context.Background(), "summary.json.gz", summary)
	require.NoError(t, err)

	// Round-trip the written file.
	file, err := os.Open(filepath.Join(dir, "summary.json.gz"))
	require.NoError(t, err)
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	require.NoError(t, err)
	defer gzipReader.Close()

	var decoded []model.CodeSummary
	require.NoError(t, json.NewDecoder(gzipReader).Decode(&decoded))
	assert.Equal(t, summary, decoded)
}

func TestFileExporter_CreatesDirectory(t *testing.T) {
	logger := zerolog.Nop()
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	exporter := NewFileExporter(dir, logger)
	err := exporter.Export(context.Background(), "summary.json.gz", nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "summary.json.gz"))
	assert.NoError(t, err)
}

func TestFileExporter_UnwritableDirectory(t *testing.T) {
	logger := zerolog.Nop()

	exporter := NewFileExporter("/proc/no-such-dir", logger)
	err := exporter.Export(context.Background(), "summary.json.gz", nil)
	assert.Error(t, err)
}
