// Package blob stores proof-of-delivery photos on the local filesystem.
// The returned reference is the path relative to the storage root, which is
// what gets persisted on the order aggregate.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"parcelflow/internal/core/domain/model/kernel"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// FilesystemPhotoStorage implements the PhotoStorage port on a local directory.
type FilesystemPhotoStorage struct {
	rootDir string
}

// NewFilesystemPhotoStorage creates a photo store rooted at rootDir.
// The directory is created on demand.
func NewFilesystemPhotoStorage(rootDir string) *FilesystemPhotoStorage {
	return &FilesystemPhotoStorage{rootDir: rootDir}
}

// Store writes the photo payload and returns its reference.
// One photo per order: a retried completion overwrites the previous file
// instead of leaking orphans.
func (s *FilesystemPhotoStorage) Store(ctx context.Context, orderID kernel.UUID, photo []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := orderID.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.rootDir, dirPermissions); err != nil {
		return "", fmt.Errorf("create photo storage dir: %w", err)
	}

	ref := fmt.Sprintf("%s.jpg", orderID.String())
	if err := os.WriteFile(filepath.Join(s.rootDir, ref), photo, filePermissions); err != nil {
		return "", fmt.Errorf("write delivery photo: %w", err)
	}

	return ref, nil
}
