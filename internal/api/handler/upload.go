package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

const (
	defaultMaxUploadBytes = 2 << 30
	multipartMemory       = 32 << 20
)

// UploadConfig controls how multipart uploads are staged on local disk.
type UploadConfig struct {
	// TempDir receives staged files. Empty means os.TempDir().
	TempDir string
	// MaxBytes caps the whole request body.
	MaxBytes int64
}

// stagedFiles tracks temp files written for one request.
type stagedFiles []string

// cleanup removes every staged file. Errors are ignored; the files live in a temp dir.
func (s stagedFiles) cleanup() {
	for _, p := range s {
		_ = os.Remove(p)
	}
}

func parseMultipart(w http.ResponseWriter, r *http.Request, cfg UploadConfig) error {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.InvalidArgument(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return apperr.Wrap(apperr.KindInvalidArgument, "request must be multipart/form-data", err)
	}
	return nil
}

// stageFormFile copies the named form file into cfg.TempDir and records it in
// staged. A missing field returns an empty path and no error.
func stageFormFile(r *http.Request, field string, cfg UploadConfig, staged *stagedFiles) (string, error) {
	src, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Wrap(apperr.KindInvalidArgument, "failed to read "+field, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(cfg.TempDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	*staged = append(*staged, dst.Name())

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("stage %s: %w", field, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close staged %s: %w", field, err)
	}

	return dst.Name(), nil
}
