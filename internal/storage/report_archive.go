// Package storage archives monitor run reports to S3-compatible object
// storage so operators can audit batch history beyond the log window.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/monitor"
)

const reportKeyPrefix = "monitor-runs"

// ReportArchive writes run reports as JSON objects, one per run.
type ReportArchive struct {
	client *minio.Client
	bucket string
}

func NewReportArchive(cfg config.ReportsConfig) (*ReportArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("reports endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("reports credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("reports bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &ReportArchive{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// ArchiveReport stores one run report under a timestamped key.
func (a *ReportArchive) ArchiveReport(ctx context.Context, report *monitor.RunReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}

	key := fmt.Sprintf("%s/%s/run-%s.json",
		reportKeyPrefix,
		report.StartedAt.UTC().Format("2006/01/02"),
		report.StartedAt.UTC().Format("150405"),
	)

	_, err = a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to store run report: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ monitor.Archiver = (*ReportArchive)(nil)
