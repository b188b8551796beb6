package extractor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

// ErrFileTooLarge is returned by LoadFile when a local file exceeds the
// configured upload limit.
var ErrFileTooLarge = errors.New("file exceeds upload size limit")

// LoadFile reads a local file as if it had been uploaded. An empty
// contentType is derived from the file extension.
func LoadFile(path, contentType string, maxSize int64) (*models.UploadedDocument, error) {
	if contentType == "" {
		contentType = ContentTypeForExtension(filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s: %w (%dMB)", path, ErrFileTooLarge, maxSize>>20)
	}

	return &models.UploadedDocument{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
