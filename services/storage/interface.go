package storage

import "context"

// StorageService hosts uploaded photos. When no backend is configured, image
// pairs travel inline as data URIs and this service is simply nil.
type StorageService interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
}
