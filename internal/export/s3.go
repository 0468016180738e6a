package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/config"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// ObjectPutter is the slice of the S3 client the exporter needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func NewS3Client(cfg config.S3Config) *s3.Client {
	awsCfg := aws.Config{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO e afins
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

type Result struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Rows   int    `json:"rows"`
}

type S3Exporter struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Exporter(client ObjectPutter, bucket, prefix string) *S3Exporter {
	return &S3Exporter{client: client, bucket: bucket, prefix: prefix}
}

func (e *S3Exporter) Key(date caldate.Date) string {
	return path.Join(e.prefix, fmt.Sprintf("reservas-%s.csv", date.String()))
}

func (e *S3Exporter) Export(ctx context.Context, date caldate.Date, list []models.Reservation) (*Result, error) {
	body, err := BuildCSV(list)
	if err != nil {
		return nil, fmt.Errorf("build csv: %w", err)
	}

	key := e.Key(date)
	if _, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv; charset=utf-8"),
	}); err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", key, err)
	}

	return &Result{Bucket: e.bucket, Key: key, Rows: len(list)}, nil
}
