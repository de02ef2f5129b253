package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"adRecoDashboard/domain"
)

// GetObjectAPI is the part of the S3 client S3Store needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store reads objects from a bucket, optionally below a key prefix.
type S3Store struct {
	client GetObjectAPI
	bucket string
	prefix string
}

var _ Store = (*S3Store)(nil)

// NewS3Store builds a store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region, prefix string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for data store: %w", err)
	}
	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func NewS3StoreWithClient(client GetObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.key(name)

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noKey) || errors.As(err, &notFound) {
			return nil, &domain.MissingDataFileError{Resource: name}
		}
		return nil, fmt.Errorf("S3 GetObject %s/%s: %w", s.bucket, key, err)
	}
	return resp.Body, nil
}
