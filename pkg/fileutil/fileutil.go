package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rohmanhakim/page-loader/pkg/failure"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// CreateDir creates exactly parent/name. Unlike os.MkdirAll it fails when
// the directory is already there or when parent does not exist.
func CreateDir(parent string, name string) (string, failure.ClassifiedError) {
	target := filepath.Join(parent, name)
	if err := os.Mkdir(target, dirPerm); err != nil {
		return "", classify(target, err)
	}
	return target, nil
}

// WriteFile writes data to path, creating or truncating the file.
// The parent directory must already exist.
func WriteFile(path string, data []byte) failure.ClassifiedError {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return classify(dir, err)
	}
	if !info.IsDir() {
		return &FileError{
			Message: "parent is not a directory",
			Path:    dir,
			Cause:   ErrCauseParentMissing,
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return classify(path, err)
	}
	return nil
}

func classify(path string, err error) *FileError {
	cause := ErrCauseWriteFailure
	switch {
	case errors.Is(err, fs.ErrExist):
		cause = ErrCauseAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		cause = ErrCausePermissionDenied
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		cause = ErrCauseParentMissing
	case errors.Is(err, syscall.ENOSPC):
		cause = ErrCauseDiskFull
	}
	return &FileError{
		Message: err.Error(),
		Path:    path,
		Cause:   cause,
	}
}
