// Package security validates user-supplied file paths before the CLI reads
// calendar exports from them or writes schedules to them.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxImportBytes caps the size of a calendar export read from disk.
const MaxImportBytes = 4 << 20

// ErrFileTooLarge is returned when a file exceeds the read limit.
var ErrFileTooLarge = errors.New("file too large")

// dangerousChars contains shell metacharacters that have no place in a path.
var dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r"}

// ValidateFilePath cleans path, makes it absolute and resolves symlinks when
// the file exists.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolvedPath, nil
}

// ReadFileLimited reads a validated path, refusing regular files larger than
// limit bytes.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path is validated above
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", cleanPath)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, cleanPath, limit)
	}
	return data, nil
}

// WriteFile writes data to a validated path, creating missing parent
// directories. Existing files are replaced.
func WriteFile(path string, data []byte) (string, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	// #nosec G306 - exported schedules are meant to be shared
	if err := os.WriteFile(cleanPath, data, 0o644); err != nil {
		return "", err
	}
	return cleanPath, nil
}
