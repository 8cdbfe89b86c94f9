// file: pkg/diskimg/writer.go

package diskimg

import (
	"fmt"
	"io"
	"os"
)

// SaveToFile saves a snapshot of the disk to a file
func (fs *FileSystem) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := fs.Save(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Save closes every open user file, flushes the directory and the metadata
// blocks, then writes the header followed by the whole block array.
func (fs *FileSystem) Save(w io.Writer) error {
	if err := fs.Sync(); err != nil {
		return err
	}

	payload := fs.disk.Bytes()
	header := NewSnapshotHeader(fs.volumeID, payload)

	if _, err := w.Write(header.toBytes()); err != nil {
		return fmt.Errorf("%w: failed to write snapshot header: %w", ErrPersistence, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: failed to write blocks: %w", ErrPersistence, err)
	}
	return nil
}

// Sync brings the block array up to date with the in-memory state. User
// files are closed, so their handles are invalid afterwards.
func (fs *FileSystem) Sync() error {
	for handle := DirectoryHandle + 1; handle < OpenFileTableSize; handle++ {
		if fs.oft[handle].inUse() {
			if err := fs.closeEntry(handle); err != nil {
				return err
			}
		}
	}
	if err := fs.closeEntry(DirectoryHandle); err != nil {
		return err
	}
	return fs.table.flushTo(fs.disk)
}

// WriteRawImage writes the bare block array without a header
func (fs *FileSystem) WriteRawImage(w io.Writer) error {
	if err := fs.Sync(); err != nil {
		return err
	}
	if _, err := fs.disk.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
