// file: pkg/diskimg/reader.go

package diskimg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ha1tch/ldiskfs/pkg/disk"
)

// LoadFromFile loads a snapshot from a file
func LoadFromFile(filename string) (*FileSystem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	defer file.Close()

	return Load(file)
}

// Load reads a snapshot. Both headered snapshots and bare block arrays are
// accepted.
func Load(r io.Reader) (*FileSystem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	volumeID := uuid.Nil
	payload := data
	if len(data) != disk.ImageSize && hasSnapshotMagic(data) {
		var header SnapshotHeader
		if err := header.FromBytes(data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		payload = data[SnapshotHeaderSize:]
		if err := header.Validate(payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		volumeID = header.VolumeID
	}
	if len(payload) != disk.ImageSize {
		return nil, fmt.Errorf("%w: image is %d bytes, want %d", ErrPersistence, len(payload), disk.ImageSize)
	}

	d := disk.NewDisk()
	if _, err := d.ReadFrom(bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	fs := &FileSystem{
		disk:     d,
		table:    &AllocationTable{},
		volumeID: volumeID,
	}
	if err := fs.table.loadFrom(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	fs.resetOpenFileTable()
	if err := fs.bindDirectory(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return fs, nil
}

// Initialize restores the disk from a snapshot file, or formats a fresh
// disk when the file does not exist
func (fs *FileSystem) Initialize(filename string) (LoadStatus, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		fs.format()
		return StatusInitialized, nil
	}

	loaded, err := LoadFromFile(filename)
	if err != nil {
		return StatusInitialized, err
	}
	*fs = *loaded
	return StatusRestored, nil
}
