// file: pkg/diskimg/fileops.go

package diskimg

import (
	"fmt"
)

// Create adds an empty file with one data block to the directory. Only the
// first MaxNameLength bytes of name are kept.
func (fs *FileSystem) Create(name string) error {
	name, err := normalizeFilename(name)
	if err != nil {
		return err
	}

	descriptor, ok := fs.table.FindFreeDescriptor()
	if !ok {
		return ErrNoFreeDescriptor
	}

	_, _, exists, err := fs.lookup(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrFileExists, name)
	}

	offset, err := fs.findFreeSlot()
	if err != nil {
		return err
	}

	block, ok := fs.table.FindFreeDataBlock()
	if !ok {
		return ErrDiskFull
	}

	fs.table.SetBit(block)
	d := fs.table.descriptor(descriptor)
	d.Length = 0
	d.Blocks[0] = int32(block)

	if err := fs.insertSlot(offset, name, descriptor); err != nil {
		// Roll back so the descriptor and block are not leaked
		d.reset()
		fs.table.ClearBit(block)
		return err
	}
	return nil
}

// Destroy removes a file, closing it first when it is open, and returns its
// blocks and descriptor to the free pool
func (fs *FileSystem) Destroy(name string) error {
	name, err := normalizeFilename(name)
	if err != nil {
		return err
	}

	offset, slot, found, err := fs.lookup(name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	if err := fs.clearSlot(offset); err != nil {
		return err
	}

	descriptor := int(slot.Descriptor)
	if descriptor <= DirectoryDescriptor || descriptor >= NumDescriptors {
		return nil
	}

	if handle := fs.handleFor(descriptor); handle > DirectoryHandle {
		if err := fs.closeEntry(handle); err != nil {
			return err
		}
	}

	d := fs.table.descriptor(descriptor)
	for _, block := range d.MappedBlocks() {
		if err := fs.table.ClearBit(block); err != nil {
			return err
		}
	}
	d.reset()
	return nil
}

// Open binds a free open file table slot to the named file and returns the
// slot index. A file that is already open keeps its handle.
func (fs *FileSystem) Open(name string) (int, error) {
	handle, _, err := fs.open(name)
	return handle, err
}

// open reports whether a new handle was bound
func (fs *FileSystem) open(name string) (int, bool, error) {
	name, err := normalizeFilename(name)
	if err != nil {
		return -1, false, err
	}

	_, slot, found, err := fs.lookup(name)
	if err != nil {
		return -1, false, err
	}
	descriptor := int(slot.Descriptor)
	if !found || descriptor >= NumDescriptors {
		return -1, false, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	if handle := fs.handleFor(descriptor); handle > DirectoryHandle {
		return handle, false, nil
	}

	handle := fs.freeHandle()
	if handle < 0 {
		return -1, false, ErrTooManyOpenFiles
	}

	d := fs.table.descriptor(descriptor)
	first, err := fs.disk.ReadBlock(d.BlockIndex(0))
	if err != nil {
		return -1, false, err
	}

	fs.oft[handle].bind(descriptor, int(d.Length), first)
	return handle, true, nil
}

// Close writes the cached block back, stores the length in the descriptor
// and frees the slot. Closing the directory handle only flushes it.
func (fs *FileSystem) Close(handle int) error {
	if _, err := fs.entry(handle); err != nil {
		return err
	}
	return fs.closeEntry(handle)
}

func (fs *FileSystem) closeEntry(handle int) error {
	of := &fs.oft[handle]
	if err := fs.flush(of); err != nil {
		return err
	}

	fs.table.descriptor(of.descriptor).Length = int32(of.length)

	if handle != DirectoryHandle {
		of.reset()
	}
	return nil
}
