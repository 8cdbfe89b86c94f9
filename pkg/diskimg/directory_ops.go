// file: pkg/diskimg/directory_ops.go

package diskimg

import (
	"fmt"
)

// The directory is file 0, permanently open in slot 0. Everything below goes
// through the same seek/read/write path as user files.

// scanDirectory reads slots from offset 0 until fn returns false or the
// directory ends
func (fs *FileSystem) scanDirectory(fn func(offset int, slot DirectorySlot) bool) error {
	dir := &fs.oft[DirectoryHandle]
	if err := fs.seek(dir, 0); err != nil {
		return err
	}

	for offset := 0; offset+SlotSize <= dir.length; offset += SlotSize {
		data, err := fs.read(dir, SlotSize)
		if err != nil {
			return fmt.Errorf("failed to read directory slot at %d: %w", offset, err)
		}

		var slot DirectorySlot
		if err := slot.UnmarshalBinary(data); err != nil {
			return err
		}
		if !fn(offset, slot) {
			return nil
		}
	}
	return nil
}

// lookup returns the offset and contents of the slot holding name
func (fs *FileSystem) lookup(name string) (int, DirectorySlot, bool, error) {
	found := -1
	var match DirectorySlot
	err := fs.scanDirectory(func(offset int, slot DirectorySlot) bool {
		if slot.InUse() && slot.Filename() == name {
			found = offset
			match = slot
			return false
		}
		return true
	})
	if err != nil {
		return 0, DirectorySlot{}, false, err
	}
	return found, match, found >= 0, nil
}

// findFreeSlot returns the offset of the first reusable slot, or the end of
// the directory when every existing slot is taken
func (fs *FileSystem) findFreeSlot() (int, error) {
	dir := &fs.oft[DirectoryHandle]
	if dir.length == 0 {
		return 0, nil
	}

	free := -1
	err := fs.scanDirectory(func(offset int, slot DirectorySlot) bool {
		if !slot.InUse() {
			free = offset
			return false
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	if free >= 0 {
		return free, nil
	}

	if dir.length+SlotSize > MaxFileSize {
		return 0, ErrDirectoryFull
	}
	return dir.length, nil
}

// writeSlot stores slot at offset. Slots never straddle a block boundary, so
// a short write means no block could be allocated for the directory.
func (fs *FileSystem) writeSlot(offset int, slot DirectorySlot) error {
	data, err := slot.MarshalBinary()
	if err != nil {
		return err
	}

	dir := &fs.oft[DirectoryHandle]
	if err := fs.seek(dir, offset); err != nil {
		return err
	}
	n, err := fs.write(dir, data, SlotSize)
	if err != nil {
		return err
	}
	if n < SlotSize {
		return fmt.Errorf("%w: cannot grow directory", ErrDiskFull)
	}
	return nil
}

func (fs *FileSystem) insertSlot(offset int, name string, descriptor int) error {
	return fs.writeSlot(offset, newDirectorySlot(name, descriptor))
}

func (fs *FileSystem) clearSlot(offset int) error {
	return fs.writeSlot(offset, emptyDirectorySlot())
}
