package storage

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize caps uploads at 5MB.
const MaxImageSize = 5 * 1024 * 1024

var AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

type (
	UploadResult struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}

	Storage interface {
		UploadFile(file *multipart.FileHeader, folder string, allowedTypes ...string) (UploadResult, error)
		DeleteFile(key string) error
		GetPublicLink(key string) string
		// GetObjectKey is the inverse of GetPublicLink; it returns "" for
		// links that do not belong to this backend.
		GetObjectKey(link string) string
	}
)

func validateFile(file *multipart.FileHeader, allowedTypes []string) error {
	if file.Size > MaxImageSize {
		return ErrFileTooLarge
	}
	if len(allowedTypes) == 0 {
		return nil
	}
	contentType := file.Header.Get("Content-Type")
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return ErrFileTypeNotAllowed
}

func objectKey(file *multipart.FileHeader, folder string) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	return folder + "/" + uuid.New().String() + ext
}
