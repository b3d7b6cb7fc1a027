package export

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/netx"
)

const (
	presignExpiry = 15 * time.Minute
	contentType   = "text/plain; charset=utf-8"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// S3Archive uploads letters through presigned PUT URLs, so the body goes
// over plain HTTP and no SDK transport is involved.
type S3Archive struct {
	cfg  config.S3
	http *http.Client
}

// NewS3Archive uses client for uploads; nil means http.DefaultClient.
func NewS3Archive(cfg config.S3, client *http.Client) *S3Archive {
	return &S3Archive{cfg: cfg, http: client}
}

func (a *S3Archive) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(a.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.cfg.AccessKey,
			a.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if a.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(a.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client), nil
}

// PresignPut returns a URL accepting a PUT of key for a limited time.
func (a *S3Archive) PresignPut(ctx context.Context, key string) (string, error) {
	pc, err := a.presignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	bucket := a.cfg.Bucket
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (a *S3Archive) Put(ctx context.Context, key string, body []byte) error {
	url, err := a.PresignPut(ctx, key)
	if err != nil {
		return err
	}
	return netx.UploadToPresignedURL(ctx, a.http, url, contentType, body)
}
