package service

import (
	"context"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxDriveImageBytes bounds a single Drive download
const maxDriveImageBytes = 20 << 20

// DriveService downloads product images referenced as drive://<fileID>
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	client, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create drive service")
	}

	return &DriveService{client: client}, nil
}

var _ DriveServiceInterface = (*DriveService)(nil)

// DownloadImage returns the content of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, errors.Wrapf(err, "download drive file %s", fileID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("drive returned status %d for file %s", resp.StatusCode, fileID)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read drive file")
	}
	return data, nil
}
