package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore uploads binary payloads to S3 and returns public object URLs.
// Keys are random, so uploads never collide and stale objects from abandoned
// registrations are simply never referenced.
type BlobStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewBlobStore(cfg aws.Config, bucket string) *BlobStore {
	return &BlobStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}
}

// Upload stores the payload under a fresh random key and returns its URL.
func (b *BlobStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key, err := randomKey()
	if err != nil {
		return "", fmt.Errorf("blob upload: %w", err)
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob upload: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key), nil
}

func randomKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
