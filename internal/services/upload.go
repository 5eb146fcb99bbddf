package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 5 * time.Minute

// UploadService hands out pre-signed S3 PUT URLs so the mobile client can
// upload proof photos and profile pictures directly.
type UploadService struct {
	s3Client *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewUploadService creates a new upload service
func NewUploadService(region, bucket, accessKey, secretKey, endpoint string) (*UploadService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &UploadService{
		s3Client: s3Client,
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}, nil
}

// UploadTicket is a pre-signed upload slot
type UploadTicket struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"`
}

// CreateUploadURL generates a pre-signed PUT URL for an image. The caller
// stores the returned public URL on the post or profile after uploading.
func (s *UploadService) CreateUploadURL(ctx context.Context, uid, contentType string) (*UploadTicket, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("%s/%s.jpg", uid, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	if s.endpoint != "" {
		publicURL = fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}

	return &UploadTicket{
		UploadURL: request.URL,
		PublicURL: publicURL,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}
