package clients

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emzola/bookstore/config"
)

// S3Client stores book covers in an AWS S3 bucket.
type S3Client struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewS3Client configures a new AWS S3 object storage client.
func NewS3Client(ctx context.Context, cfg config.Config) (*S3Client, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
	awsCfg, err := s3Config.LoadDefaultConfig(ctx, s3Config.WithCredentialsProvider(creds), s3Config.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, err
	}
	return &S3Client{
		uploader: manager.NewUploader(s3.NewFromConfig(awsCfg)),
		bucket:   cfg.S3.Bucket,
		region:   cfg.S3.Region,
	}, nil
}

// PutObject uploads body under key and returns its public URL.
func (c *S3Client) PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: int64(len(body)),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return c.ObjectURL(key), nil
}

// ObjectURL returns the virtual-hosted style URL of key in the bucket.
func (c *S3Client) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
