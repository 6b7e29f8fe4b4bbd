package backup

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	commons3 "github.com/xxxsen/common/s3"
)

type s3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	UseSSL    bool   `json:"use_ssl"`
}

type s3Target struct {
	client *commons3.S3Client
	prefix string
}

func init() {
	Register("s3", createS3Target)
}

func createS3Target(args interface{}) (Target, error) {
	config := &s3Config{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Endpoint == "" || config.Bucket == "" || config.SecretID == "" || config.SecretKey == "" {
		return nil, fmt.Errorf("s3 endpoint/bucket/secret_id/secret_key are required")
	}
	if config.Region == "" {
		config.Region = "cn"
	}
	client, err := commons3.New(
		commons3.WithEndpoint(config.Endpoint),
		commons3.WithSecret(config.SecretID, config.SecretKey),
		commons3.WithBucket(config.Bucket),
		commons3.WithRegion(config.Region),
		commons3.WithSSL(config.UseSSL),
	)
	if err != nil {
		return nil, err
	}
	return &s3Target{client: client, prefix: strings.Trim(config.Prefix, "/")}, nil
}

func (t *s3Target) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("backup key is required")
	}
	objectKey := key
	if t.prefix != "" {
		objectKey = path.Join(t.prefix, key)
	}
	reader := readSeekNopCloser{bytes.NewReader(data)}
	if _, err := t.client.Upload(ctx, objectKey, reader, int64(len(data))); err != nil {
		return err
	}
	return nil
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error {
	return nil
}
