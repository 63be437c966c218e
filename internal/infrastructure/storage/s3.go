package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/pkg/config"
)

// S3Resolver resuelve rutas de S3 (o compatible) a URLs descargables.
type S3Resolver struct {
	presigner     *s3.PresignClient
	publicBucket  string
	privateBucket string
	publicBase    string
}

// NewS3Resolver carga la configuración de AWS. Con Endpoint definido usa
// path-style (MinIO, LocalStack); con AccessKey usa credenciales estáticas.
func NewS3Resolver(ctx context.Context, cfg config.StorageConfig) (*S3Resolver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.PublicBucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.PublicBucket, cfg.Region)
		}
	}

	return &S3Resolver{
		presigner:     s3.NewPresignClient(client),
		publicBucket:  cfg.PublicBucket,
		privateBucket: cfg.PrivateBucket,
		publicBase:    strings.TrimRight(base, "/"),
	}, nil
}

// PublicURL URL directa del objeto en el bucket público.
func (r *S3Resolver) PublicURL(path string) string {
	return r.publicBase + "/" + objectKey(path)
}

// SignedURL presigned GET sobre el bucket privado con validez ttl.
func (r *S3Resolver) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.privateBucket),
		Key:    aws.String(objectKey(path)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return req.URL, nil
}

var _ documents.URLResolver = (*S3Resolver)(nil)
