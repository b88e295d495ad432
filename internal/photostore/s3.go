package photostore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// ObjectAPI is the subset of the S3 client the store uses
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config locates an S3 or R2 bucket
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty for AWS, the account endpoint for R2
	AccessKeyID     string
	SecretAccessKey string
	PublicDomain    string
}

// S3Store keeps photos in an S3-compatible bucket
type S3Store struct {
	client       ObjectAPI
	bucket       string
	publicDomain string
}

// NewS3Store builds an S3 client from cfg. Static credentials are used when
// given, otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StoreWithClient(client, cfg.Bucket, cfg.PublicDomain), nil
}

// NewS3StoreWithClient wraps an existing client
func NewS3StoreWithClient(client ObjectAPI, bucket, publicDomain string) *S3Store {
	return &S3Store{client: client, bucket: bucket, publicDomain: strings.TrimSuffix(publicDomain, "/")}
}

// Fetch downloads the object named by ref. A public URL under the store's
// public domain is accepted in place of the bare key.
func (s *S3Store) Fetch(ctx context.Context, ref string) ([]byte, error) {
	key := s.keyFor(ref)
	if key == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, ErrMsgEmptyRef)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, key)
		}
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrPhotoIO, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPhotoIO, key, err)
	}
	if len(data) > MaxPhotoBytes {
		return nil, fmt.Errorf("%w: "+ErrMsgPhotoTooLarge, domain.ErrPhotoIO, MaxPhotoBytes)
	}

	logger.FromContext(ctx).Debug(LogMsgPhotoFetched, "key", key, "bytes", len(data))
	return data, nil
}

// Put uploads data under key and returns its public URL, or the key when no
// public domain is configured
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrPhotoIO, ErrMsgEmptyRef)
	}
	if len(data) > MaxPhotoBytes {
		return "", fmt.Errorf("%w: "+ErrMsgPhotoTooLarge, domain.ErrPhotoIO, MaxPhotoBytes)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: put %s: %v", domain.ErrPhotoIO, key, err)
	}

	logger.FromContext(ctx).Debug(LogMsgPhotoStored, "key", key, "bytes", len(data))
	if s.publicDomain == "" {
		return key, nil
	}
	return s.publicDomain + "/" + key, nil
}

func (s *S3Store) keyFor(ref string) string {
	if s.publicDomain != "" {
		ref = strings.TrimPrefix(ref, s.publicDomain+"/")
	}
	return strings.TrimPrefix(ref, "/")
}
