// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API is the slice of the S3 client the source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches the schema document from object storage.
type S3Source struct {
	client S3API
	bucket string
	key    string
}

// NewS3Source creates an S3Source over an existing client.
func NewS3Source(client S3API, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// NewS3SourceFromRegion builds the client from the ambient AWS credential
// chain for the given region.
func NewS3SourceFromRegion(ctx context.Context, region, bucket, key string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Source(s3.NewFromConfig(cfg), bucket, key), nil
}

// Name identifies the source in logs and errors.
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Fetch retrieves the object once. Client-class API errors (missing key,
// missing bucket, access denied) classify as NotFound so the caller can fall
// back; anything else is Transient.
func (s *S3Source) Fetch(ctx context.Context) Result {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isClientError(err) {
			return Result{Status: NotFound, Err: err}
		}
		return Result{Status: Transient, Err: err}
	}
	defer out.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Result{Status: Transient, Err: fmt.Errorf("read object body: %w", err)}
	}
	return Result{Status: Found, Body: body}
}

func isClientError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NoSuchBucket", "NotFound", "AccessDenied":
		return true
	}
	return false
}
