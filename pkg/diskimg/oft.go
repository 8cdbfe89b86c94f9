// file: pkg/diskimg/oft.go

package diskimg

import (
	"fmt"

	"github.com/ha1tch/ldiskfs/pkg/disk"
)

// openFile is one open file table entry. The buffer caches exactly one
// block of the file: direct block number cached.
type openFile struct {
	buffer     disk.Block
	cursor     int // Byte position within the file
	descriptor int // Bound descriptor, -1 when unused
	length     int // Cached file length
	cached     int // Direct block held in buffer
}

func (of *openFile) bind(descriptor, length int, first disk.Block) {
	of.buffer = first
	of.cursor = 0
	of.descriptor = descriptor
	of.length = length
	of.cached = 0
}

func (of *openFile) reset() {
	of.buffer = disk.Block{}
	of.cursor = 0
	of.descriptor = -1
	of.length = -1
	of.cached = 0
}

func (of *openFile) inUse() bool {
	return of.descriptor >= 0
}

// entry resolves a handle to its bound open file table entry
func (fs *FileSystem) entry(handle int) (*openFile, error) {
	if handle < 0 || handle >= OpenFileTableSize {
		return nil, fmt.Errorf("%w: handle %d", ErrOutOfRange, handle)
	}
	of := &fs.oft[handle]
	if !of.inUse() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, handle)
	}
	return of, nil
}

// handleFor returns the handle bound to a descriptor, or -1
func (fs *FileSystem) handleFor(descriptor int) int {
	for i := range fs.oft {
		if fs.oft[i].descriptor == descriptor {
			return i
		}
	}
	return -1
}

// freeHandle returns the first unused user slot, or -1
func (fs *FileSystem) freeHandle() int {
	for i := DirectoryHandle + 1; i < OpenFileTableSize; i++ {
		if !fs.oft[i].inUse() {
			return i
		}
	}
	return -1
}

// OpenHandles lists the user handles currently bound, in slot order
func (fs *FileSystem) OpenHandles() []int {
	var handles []int
	for i := DirectoryHandle + 1; i < OpenFileTableSize; i++ {
		if fs.oft[i].inUse() {
			handles = append(handles, i)
		}
	}
	return handles
}
