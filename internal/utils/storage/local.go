package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

type localStorage struct {
	uploadDir string
	baseURL   string
}

// NewLocalStorage writes uploads under uploadDir and serves them from
// baseURL under the /uploads path.
func NewLocalStorage(uploadDir, baseURL string) (Storage, error) {
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return nil, err
	}
	return &localStorage{
		uploadDir: uploadDir,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (l *localStorage) UploadFile(file *multipart.FileHeader, folder string, allowedTypes ...string) (UploadResult, error) {
	if err := validateFile(file, allowedTypes); err != nil {
		return UploadResult{}, err
	}

	key := objectKey(file, folder)
	dst := filepath.Join(l.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return UploadResult{}, err
	}

	src, err := file.Open()
	if err != nil {
		return UploadResult{}, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return UploadResult{}, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return UploadResult{}, err
	}

	return UploadResult{URL: l.GetPublicLink(key), Key: key}, nil
}

func (l *localStorage) DeleteFile(key string) error {
	path := filepath.Join(l.uploadDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *localStorage) GetPublicLink(key string) string {
	return l.baseURL + "/uploads/" + key
}

func (l *localStorage) GetObjectKey(link string) string {
	prefix := l.baseURL + "/uploads/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
