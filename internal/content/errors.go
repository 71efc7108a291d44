package content

import (
	"errors"
	"fmt"
)

// ErrFileProcessing matches every FileProcessingError via errors.Is.
var ErrFileProcessing = errors.New("content: file processing failed")

// FileProcessingError wraps a failure tied to one path under the content root.
type FileProcessingError struct {
	Path  string
	Cause error
}

func (e *FileProcessingError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("content: process %s failed", e.Path)
	}
	return fmt.Sprintf("content: process %s: %v", e.Path, e.Cause)
}

func (e *FileProcessingError) Is(target error) bool {
	return target == ErrFileProcessing
}

func (e *FileProcessingError) Unwrap() error {
	return e.Cause
}

var (
	errNotDirectory = errors.New("not a directory")
	errEmptySlug    = errors.New("slug resolved to an empty value")
)
