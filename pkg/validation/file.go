package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"event-rental/config"
	apperrors "event-rental/pkg/errors"
)

// ValidateFile checks the size and sniffed MIME type of an upload.
// contextName is a key of config.UploadContexts.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, field, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("unknown upload context %q", contextName)
	}

	verr := apperrors.NewValidationError()

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			verr.Add(field, fmt.Sprintf("file size (%.2f MB) exceeds the %d MB limit", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB))
			return verr
		}
	}
	if fileHeader.Size == 0 {
		verr.Add(field, "the submitted file is empty")
		return verr
	}

	if len(rules.AllowedMimeTypes) == 0 {
		return nil
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	// rewind for the storage writer
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind upload: %w", err)
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		verr.Add(field, fmt.Sprintf("unsupported file type: %s", mimeType))
		return verr
	}
	return nil
}
