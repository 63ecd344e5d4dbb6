package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/aussiebroadwan/edgegate/pkg/gatewaysdk"
	"github.com/aussiebroadwan/edgegate/pkg/sigv4"
)

// ErrObjectNotFound reports a key absent from the object store.
var ErrObjectNotFound = errors.New("service: object not found")

// ObjectStore is the narrow capability the gateway needs from the storage
// backend. An explicit interface instead of a dynamically-typed binding:
// callers depend on exactly these three operations and nothing else.
type ObjectStore interface {
	// Put stores body under key and returns the backend's etag.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// Get returns the object body and its stored content type, or
	// ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// StorageService handles proxy uploads and presigned direct uploads.
type StorageService struct {
	Objects   ObjectStore
	Presigner *sigv4.Presigner

	// URLExpiry bounds presigned PUT validity. Zero uses sigv4's default.
	URLExpiry time.Duration
}

// Upload streams body into the object store and returns the stored key,
// backend etag and canonical object URL.
func (s *StorageService) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (gatewaysdk.UploadResponse, error) {
	etag, err := s.Objects.Put(ctx, key, body, size, contentType)
	if err != nil {
		return gatewaysdk.UploadResponse{}, err
	}
	return gatewaysdk.UploadResponse{
		Key:  key,
		ETag: etag,
		URL:  s.objectURL(key),
	}, nil
}

// SignedPutURL computes a presigned PUT URL for a direct-to-storage upload.
// Pure computation; the storage service is never contacted.
func (s *StorageService) SignedPutURL(key string, now time.Time) gatewaysdk.SignedPutResponse {
	return gatewaysdk.SignedPutResponse{
		URL: s.Presigner.PresignPut(key, s.URLExpiry, now),
		Key: key,
	}
}

// Fetch returns the object body stream and stored content type.
func (s *StorageService) Fetch(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.Objects.Get(ctx, key)
}

// Remove deletes the object by key.
func (s *StorageService) Remove(ctx context.Context, key string) error {
	return s.Objects.Delete(ctx, key)
}

func (s *StorageService) objectURL(key string) string {
	u := url.URL{
		Scheme: "https",
		Host:   s.Presigner.Host,
		Path:   "/" + s.Presigner.Bucket + "/" + key,
	}
	return u.String()
}
