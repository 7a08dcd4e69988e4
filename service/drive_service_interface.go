package service

import "context"

// DriveServiceInterface fetches image bytes stored in Google Drive
type DriveServiceInterface interface {
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
