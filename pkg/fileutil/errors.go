package fileutil

import (
	"fmt"

	"github.com/rohmanhakim/page-loader/pkg/failure"
)

type FileErrorCause string

const (
	ErrCauseAlreadyExists    FileErrorCause = "already exists"
	ErrCausePermissionDenied FileErrorCause = "permission denied"
	ErrCauseParentMissing    FileErrorCause = "parent directory not found"
	ErrCauseDiskFull         FileErrorCause = "disk is full"
	ErrCauseWriteFailure     FileErrorCause = "write failed"
)

type FileError struct {
	Message string
	Path    string
	Cause   FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Path)
}

// Severity is fatal when the failure is a property of the filesystem
// rather than of a single path.
func (e *FileError) Severity() failure.Severity {
	switch e.Cause {
	case ErrCausePermissionDenied, ErrCauseDiskFull:
		return failure.SeverityFatal
	default:
		return failure.SeverityRecoverable
	}
}
