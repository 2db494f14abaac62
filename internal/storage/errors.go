package storage

import (
	"fmt"

	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/pkg/failure"
	"github.com/rohmanhakim/page-loader/pkg/fileutil"
)

type StorageErrorCause string

const (
	ErrCauseDirectoryExists  StorageErrorCause = "directory already exists"
	ErrCausePermissionDenied StorageErrorCause = "no permission to write"
	ErrCausePathNotFound     StorageErrorCause = "directory under the given path not found"
	ErrCauseDiskFull         StorageErrorCause = "disk is full"
	ErrCauseWriteFailure     StorageErrorCause = "write failed"
)

type StorageError struct {
	Message string
	Cause   StorageErrorCause
	Path    string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: '%s'", e.Cause, e.Path)
}

func (e *StorageError) Severity() failure.Severity {
	switch e.Cause {
	case ErrCausePermissionDenied, ErrCauseDiskFull:
		return failure.SeverityFatal
	default:
		return failure.SeverityRecoverable
	}
}

func fromFileError(err *fileutil.FileError) *StorageError {
	cause := ErrCauseWriteFailure
	switch err.Cause {
	case fileutil.ErrCauseAlreadyExists:
		cause = ErrCauseDirectoryExists
	case fileutil.ErrCausePermissionDenied:
		cause = ErrCausePermissionDenied
	case fileutil.ErrCauseParentMissing:
		cause = ErrCausePathNotFound
	case fileutil.ErrCauseDiskFull:
		cause = ErrCauseDiskFull
	}
	return &StorageError{
		Message: err.Message,
		Cause:   cause,
		Path:    err.Path,
	}
}

// mapStorageErrorToMetadataCause maps storage-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapStorageErrorToMetadataCause(err *StorageError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseDirectoryExists,
		ErrCausePermissionDenied,
		ErrCausePathNotFound,
		ErrCauseDiskFull,
		ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
