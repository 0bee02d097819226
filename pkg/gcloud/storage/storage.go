package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/christophwitzko/gce-ci-agent/pkg/merror"
	"google.golang.org/api/option"
)

// ObjectLink is the storage URL compute accepts as raw disk source.
func ObjectLink(bucketName, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, stripSlashPrefix(objectName))
}

func stripSlashPrefix(s string) string {
	return strings.TrimPrefix(s, "/")
}

type Uploader struct {
	client *storage.Client
}

func NewUploader(ctx context.Context, opts ...option.ClientOption) (*Uploader, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client}, nil
}

func (u *Uploader) bucket(ctx context.Context, bucketName string) (*storage.BucketHandle, error) {
	bucket := u.client.Bucket(bucketName)
	_, err := bucket.Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("bucket %s does not exist", bucketName)
		}
		return nil, err
	}
	return bucket, nil
}

// Upload writes r to the object, replacing an existing object of the same
// name, and returns the object link.
func (u *Uploader) Upload(ctx context.Context, bucketName, objectName string, r io.Reader) (string, error) {
	bucket, err := u.bucket(ctx, bucketName)
	if err != nil {
		return "", err
	}

	// cancelling the context aborts a partially written object
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	objectName = stripSlashPrefix(objectName)
	objectWriter := bucket.Object(objectName).NewWriter(writeCtx)
	if _, err := io.Copy(objectWriter, r); err != nil {
		cancel()
		return "", merror.MaybeMultiError(fmt.Errorf("failed to upload %s: %w", objectName, err), objectWriter.Close())
	}
	if err := objectWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return ObjectLink(bucketName, objectName), nil
}

func (u *Uploader) UploadFile(ctx context.Context, bucketName, objectName, src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return u.Upload(ctx, bucketName, objectName, f)
}

func (u *Uploader) Close() error {
	return u.client.Close()
}
