package statement

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Sink stores a rendered statement and returns where it went.
type Sink interface {
	Put(ctx context.Context, name string, png []byte) (string, error)
}

// DirSink writes statements into a local directory.
type DirSink struct {
	Dir string
}

func (d DirSink) Put(ctx context.Context, name string, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create statement dir: %w", err)
	}
	dst := filepath.Join(d.Dir, filepath.Base(name))
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, png, 0o644); err != nil {
		return "", fmt.Errorf("write statement: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write statement: %w", err)
	}
	return dst, nil
}

// BucketSink uploads statements to a Google Cloud Storage bucket.
type BucketSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewBucketSink connects with credentialsFile when given, otherwise with the
// ambient application-default credentials. A value starting with "{" is
// treated as inline JSON.
func NewBucketSink(ctx context.Context, bucket, prefix, credentials string) (*BucketSink, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("missing statement bucket name")
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if creds := strings.TrimSpace(credentials); creds != "" {
		if strings.HasPrefix(creds, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
		} else {
			opts = append(opts, option.WithCredentialsFile(creds))
		}
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BucketSink{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectKey is the object name used for a statement file: the prefix, a
// timestamp and the file name, so repeated exports never overwrite.
func (b *BucketSink) ObjectKey(name string, now time.Time) string {
	return path.Join(b.prefix, fmt.Sprintf("%d-%s", now.UnixNano(), path.Base(name)))
}

func (b *BucketSink) Put(ctx context.Context, name string, png []byte) (string, error) {
	key := b.ObjectKey(name, time.Now())
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "image/png"
	if _, err := io.Copy(w, bytes.NewReader(png)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucket, key), nil
}

func (b *BucketSink) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}
