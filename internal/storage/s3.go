package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitbuilder/server/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
)

// presigner is the part of *s3.PresignClient media resolution needs.
type presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// s3Media implements MediaStorage using an S3-compatible backend.
type s3Media struct {
	presignClient presigner
	bucketName    string
	mediaPrefix   string
	expires       time.Duration
}

// NewS3Client builds a client for AWS or an S3-compatible endpoint such as
// MinIO. Path-style addressing is forced whenever an endpoint is set.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := endpointURL(cfg.Endpoint, cfg.UseSSL)
	client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	log.Infof("S3 client initialized for endpoint: %q, bucket: %s", endpoint, cfg.BucketName)
	return client, nil
}

// endpointURL adds a scheme to bare host:port endpoints.
func endpointURL(endpoint string, useSSL bool) string {
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// NewS3Media creates a MediaStorage presigning objects in cfg.BucketName.
func NewS3Media(client *s3.Client, cfg config.S3Config) MediaStorage {
	return newS3Media(s3.NewPresignClient(client), cfg)
}

func newS3Media(p presigner, cfg config.S3Config) *s3Media {
	expires := cfg.PresignExpiry
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	return &s3Media{
		presignClient: p,
		bucketName:    cfg.BucketName,
		mediaPrefix:   cfg.MediaPrefix,
		expires:       expires,
	}
}

func (s *s3Media) ResolveMediaURL(ctx context.Context, ref string) (string, error) {
	if ref == "" || s.mediaPrefix == "" || !strings.HasPrefix(ref, s.mediaPrefix) {
		return ref, nil
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		log.Errorf("failed to generate presigned GET URL for key '%s': %v", ref, err)
		return "", err
	}
	return req.URL, nil
}

// GeneratePresignedUploadURL creates a temporary URL for uploading (PUT).
// Keys outside the media area are placed under it.
func (s *s3Media) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = s.expires
	}
	if !strings.HasPrefix(objectKey, s.mediaPrefix) {
		objectKey = s.mediaPrefix + objectKey
	}

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType), // client must send the same header on upload
	}, s3.WithPresignExpires(expires))
	if err != nil {
		log.Errorf("failed to generate presigned PUT URL for key '%s': %v", objectKey, err)
		return "", err
	}
	return req.URL, nil
}
