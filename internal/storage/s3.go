package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/aguayodev/charla-api/internal/config"
)

// objectPutter is the slice of the S3 client the uploader needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores profile pictures in an S3-compatible bucket (MinIO in
// development) and returns the public URL under which they are served.
type S3Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// NewS3Uploader builds the S3 client from static credentials and a base
// endpoint and verifies nothing: the first upload surfaces connectivity
// problems as an internal error on that request.
func NewS3Uploader(ctx context.Context, cfg config.StorageConfig) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload decodes the client's data URL and writes the image under a fresh
// key scoped to the user. The previous picture is not deleted; the user row
// only ever points at the latest key.
func (u *S3Uploader) Upload(ctx context.Context, userID uuid.UUID, dataURL string) (string, error) {
	mime, data, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := objectKey(userID, imageExtensions[mime])

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mime),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store profile picture: %w", err)
	}

	return u.publicBaseURL + "/" + key, nil
}

func objectKey(userID uuid.UUID, ext string) string {
	return fmt.Sprintf("profiles/%s/%s.%s", userID, uuid.New(), ext)
}
