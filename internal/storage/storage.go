package storage

import (
	"errors"
	"strconv"
	"time"

	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/pkg/failure"
	"github.com/rohmanhakim/page-loader/pkg/fileutil"
	"github.com/rohmanhakim/page-loader/pkg/hashutil"
)

/*
Responsibilities
- Create the resource directory of a mirror run
- Persist the rewritten page and every mirrored resource

Output Characteristics
- The resource directory is never reused: creating it twice fails
- Files are only written into directories that already exist
- Every persisted artifact is recorded with its content hash
*/

type Storage interface {
	CreateDirectory(parent string, name string) (string, failure.ClassifiedError)
	WriteFile(path string, data []byte) failure.ClassifiedError
}

// Compile-time interface check
var _ Storage = (*LocalStorage)(nil)

type LocalStorage struct {
	metadataSink metadata.MetadataSink
	hashAlgo     hashutil.HashAlgo
}

func NewLocalStorage(
	metadataSink metadata.MetadataSink,
	hashAlgo hashutil.HashAlgo,
) LocalStorage {
	return LocalStorage{
		metadataSink: metadataSink,
		hashAlgo:     hashAlgo,
	}
}

func (s *LocalStorage) CreateDirectory(parent string, name string) (string, failure.ClassifiedError) {
	created, err := fileutil.CreateDir(parent, name)
	if err != nil {
		storageErr := s.toStorageError(err)
		s.recordError("LocalStorage.CreateDirectory", storageErr)
		return "", storageErr
	}

	s.metadataSink.RecordArtifact(
		metadata.ArtifactDirectory,
		created,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, created),
		},
	)
	return created, nil
}

func (s *LocalStorage) WriteFile(path string, data []byte) failure.ClassifiedError {
	if err := fileutil.WriteFile(path, data); err != nil {
		storageErr := s.toStorageError(err)
		s.recordError("LocalStorage.WriteFile", storageErr)
		return storageErr
	}

	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrWritePath, path),
		metadata.NewAttr(metadata.AttrSizeByte, strconv.Itoa(len(data))),
	}
	// the hash is observational; an unusable algorithm only drops the attribute
	if contentHash, err := hashutil.HashBytes(data, s.hashAlgo); err == nil {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrContentHash, contentHash))
	}
	s.metadataSink.RecordArtifact(metadata.ArtifactResource, path, attrs)
	return nil
}

func (s *LocalStorage) toStorageError(err failure.ClassifiedError) *StorageError {
	var fileErr *fileutil.FileError
	if errors.As(err, &fileErr) {
		return fromFileError(fileErr)
	}
	return &StorageError{
		Message: err.Error(),
		Cause:   ErrCauseWriteFailure,
	}
}

func (s *LocalStorage) recordError(action string, err *StorageError) {
	s.metadataSink.RecordError(
		time.Now(),
		"storage",
		action,
		mapStorageErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, err.Path),
			metadata.NewAttr(metadata.AttrMessage, err.Message),
		},
	)
}
