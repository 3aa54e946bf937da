package export

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"hemp-kart/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Exporter implements Exporter by uploading gzipped JSON to AWS S3.
type s3Exporter struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Exporter creates a new S3-based analytics exporter.
func NewS3Exporter(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Exporter, error) {
	logger = logger.With().Str("component", "s3-exporter").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 exporter initialised")

	return &s3Exporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Export uploads the summary as gzipped JSON to bucket/prefix/key.
func (e *s3Exporter) Export(ctx context.Context, key string, summary []model.CodeSummary) error {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gzipWriter).Encode(summary); err != nil {
		return fmt.Errorf("failed to encode export payload: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalise export payload: %w", err)
	}

	fullKey := path.Join(e.prefix, key)

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(e.bucket),
		Key:             aws.String(fullKey),
		Body:            bytes.NewReader(buf.Bytes()),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("bucket", e.bucket).
			Str("key", fullKey).
			Msg("failed to upload analytics export")
		return fmt.Errorf("failed to upload analytics export to s3://%s/%s: %w", e.bucket, fullKey, err)
	}

	e.logger.Info().
		Str("bucket", e.bucket).
		Str("key", fullKey).
		Int("groups", len(summary)).
		Msg("analytics summary exported to S3")

	return nil
}
