package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageURLProvider issues stable serving URLs for stored image blobs.
// A size of 0 means full size; a positive size requests a rendition scaled
// to at most that many pixels on the longest edge.
type ImageURLProvider interface {
	ServingURL(blobKey string, size int) string
}

// ImageService is the S3-backed image boundary: presigned PUT URLs for
// uploads and https serving URLs for reads.
type ImageService struct {
	s3Client *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewImageService creates a new image service
func NewImageService(ctx context.Context, region, bucket, accessKey, secretKey, endpoint string) (*ImageService, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &ImageService{
		s3Client: s3Client,
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}, nil
}

// UploadURL generates a pre-signed PUT URL for the given blob key
func (s *ImageService) UploadURL(ctx context.Context, blobKey, contentType string) (string, error) {
	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(blobKey),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 5 * time.Minute
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}
	return request.URL, nil
}

// ServingURL returns the stable https URL for a blob. Different sizes yield
// distinct URLs that resolve the same blob key.
func (s *ImageService) ServingURL(blobKey string, size int) string {
	var url string
	if s.endpoint != "" {
		url = fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, blobKey)
	} else {
		url = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, blobKey)
	}
	if size > 0 {
		url = fmt.Sprintf("%s?size=%d", url, size)
	}
	return url
}
