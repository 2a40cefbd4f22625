package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// S3Options configures an S3 compatible store.
type S3Options struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
	// PublicURL is the base for image URLs; defaults to <endpoint>/<bucket>.
	PublicURL string
}

// S3Store keeps images in an S3 bucket (AWS or MinIO).
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

// NewS3Store connects to the endpoint and creates the bucket when it does not exist.
func NewS3Store(ctx context.Context, opts S3Options, log *zap.Logger) (*S3Store, error) {
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	endpoint := fmt.Sprintf("%s://%s", scheme, opts.Endpoint)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	store := &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    opts.Bucket,
		publicURL: opts.PublicURL,
	}
	if store.publicURL == "" {
		store.publicURL = joinURL(endpoint, opts.Bucket)
	}

	if err := store.ensureBucket(ctx, opts.Region, log); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *S3Store) ensureBucket(ctx context.Context, region string, log *zap.Logger) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		log.Info("bucket exists", zap.String("bucket", s.bucket))
		return nil
	}

	log.Info("bucket not found, creating", zap.String("bucket", s.bucket))
	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}, 30*time.Second); err != nil {
		return fmt.Errorf("wait for bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(cleaned),
		Body:        body,
		ContentType: aws.String(contentType),
	}); err != nil {
		return fmt.Errorf("upload %s to bucket %s: %w", cleaned, s.bucket, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cleaned),
	}); err != nil {
		return fmt.Errorf("delete %s from bucket %s: %w", cleaned, s.bucket, err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	return joinURL(s.publicURL, key)
}
