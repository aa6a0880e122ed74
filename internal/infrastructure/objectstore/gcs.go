package objectstore

import (
	"context"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// GCS is an ObjectStore backed by one Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	ttl    time.Duration
}

func NewGCS(client *storage.Client, bucket string, signedTTL time.Duration) *GCS {
	return &GCS{client: client, bucket: bucket, ttl: signedTTL}
}

func (g *GCS) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, g.client, g.bucket, objectPath, contentType, r)
}

func (g *GCS) SignedPutURL(objectPath, contentType string) (string, error) {
	return helpers.SignedURL(g.client, g.bucket, objectPath, http.MethodPut, contentType, g.ttl)
}

func (g *GCS) SignedGetURL(objectPath string) (string, error) {
	return helpers.SignedURL(g.client, g.bucket, objectPath, http.MethodGet, "", g.ttl)
}
