package application

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

var allowedFolders = map[string]bool{"avatars": true, "achievements": true, "uploads": true}

type StorageService struct {
	Objects ObjectStore
}

func NewStorageService(objects ObjectStore) *StorageService {
	return &StorageService{Objects: objects}
}

type PresignedUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// PresignUpload reserves a key under folder/<userID>/ and signs a PUT for it.
func (s *StorageService) PresignUpload(ctx context.Context, userID, folder, filename, contentType string) (*PresignedUpload, error) {
	if s.Objects == nil {
		return nil, ErrStorageDisabled
	}
	if folder == "" {
		folder = "uploads"
	}
	if !allowedFolders[folder] {
		return nil, fmt.Errorf("%w: folder %q", ErrForbidden, folder)
	}
	key := path.Join(folder, userID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Objects.SignedPutURL(key, contentType)
	if err != nil {
		return nil, err
	}
	return &PresignedUpload{Key: key, URL: url}, nil
}

// DownloadURL signs a GET for key; only keys under the caller's own prefix are allowed.
func (s *StorageService) DownloadURL(ctx context.Context, userID, key string) (string, error) {
	if s.Objects == nil {
		return "", ErrStorageDisabled
	}
	if !ownsKey(userID, key) {
		return "", ErrForbidden
	}
	return s.Objects.SignedGetURL(key)
}

func ownsKey(userID, key string) bool {
	clean := path.Clean(key)
	if clean != key || strings.Contains(key, "..") {
		return false
	}
	parts := strings.SplitN(clean, "/", 3)
	return len(parts) == 3 && allowedFolders[parts[0]] && parts[1] == userID && parts[2] != ""
}
