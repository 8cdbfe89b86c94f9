// file: pkg/diskimg/errors.go

package diskimg

import (
	"errors"

	"github.com/ha1tch/ldiskfs/pkg/disk"
)

var (
	ErrOutOfRange       = disk.ErrOutOfRange
	ErrInvalidHandle    = errors.New("invalid file handle")
	ErrInvalidPosition  = errors.New("invalid file position")
	ErrFileExists       = errors.New("file already exists")
	ErrFileNotFound     = errors.New("file not found")
	ErrNoFreeDescriptor = errors.New("no free file descriptor")
	ErrDirectoryFull    = errors.New("directory is full")
	ErrDiskFull         = errors.New("disk is full")
	ErrTooManyOpenFiles = errors.New("open file table is full")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrFileTooLarge     = errors.New("file exceeds maximum file size")
	ErrPersistence      = errors.New("snapshot I/O failed")
)
