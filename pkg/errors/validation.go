package errors

import (
	"os"
	"strings"
)

// MaxDocumentSize is the largest document accepted by [ValidateDocumentSize].
const MaxDocumentSize = 16 << 20

// ValidateInputFile checks that path names a readable regular file.
// The empty path and "-" are accepted and mean standard input.
func ValidateInputFile(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains a null byte")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Wrap(ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return Wrap(ErrCodeInvalidPath, err, "cannot access %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}

// ValidateDocumentSize rejects documents larger than [MaxDocumentSize].
func ValidateDocumentSize(n int) error {
	if n > MaxDocumentSize {
		return New(ErrCodeInvalidInput, "document too large (%d bytes, max %d)", n, MaxDocumentSize)
	}
	return nil
}
