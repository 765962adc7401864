// Package imagestore catalogs VM template images in an S3-compatible
// object store.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/lps-ufrj-br/pvectl/internal/config"
)

// Image is one cataloged template image.
type Image struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// api is the slice of the S3 client the store uses.
type api interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store lists and uploads template images.
type Store struct {
	client api
	bucket string
}

// New creates a store from the images.s3 config block.
func New(ctx context.Context, cfg config.S3Config) (*Store, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("image store requires s3 endpoint, access_key and secret_key")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// List returns every image in the catalog bucket.
func (s *Store) List(ctx context.Context) ([]Image, error) {
	var images []Image
	var token *string

	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, classify(err, s.bucket)
		}
		for _, obj := range out.Contents {
			image := Image{Key: aws.ToString(obj.Key)}
			if obj.Size != nil {
				image.Size = *obj.Size
			}
			if obj.LastModified != nil {
				image.LastModified = *obj.LastModified
			}
			images = append(images, image)
		}
		if out.NextContinuationToken == nil {
			return images, nil
		}
		token = out.NextContinuationToken
	}
}

// Upload stores a local image file under the given key.
func (s *Store) Upload(ctx context.Context, key, localPath string) error {
	f, err := os.Open(localPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return classify(err, s.bucket)
	}
	return nil
}

// classify turns common S3 API errors into operator-readable ones.
func classify(err error, bucket string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return fmt.Errorf("image bucket %q does not exist: %w", bucket, err)
		case "AccessDenied":
			return fmt.Errorf("access to image bucket %q denied: %w", bucket, err)
		}
	}
	return err
}
