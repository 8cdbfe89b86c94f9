// file: pkg/diskimg/diskcheck.go

package diskimg

import (
	"errors"
	"fmt"
)

// DiskCheck performs a consistency check of the disk and returns all
// problems found joined into one error, or nil.
func (fs *FileSystem) DiskCheck() error {
	problems := fs.Validate()
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// Validate returns every consistency problem found on the disk
func (fs *FileSystem) Validate() []*ValidationError {
	var problems []*ValidationError
	problems = append(problems, fs.checkReservedRegion()...)
	problems = append(problems, fs.checkDescriptors()...)
	problems = append(problems, fs.checkDirectoryEntries()...)
	problems = append(problems, fs.checkOpenFileTable()...)
	return problems
}

// checkReservedRegion ensures the header blocks and the first directory
// block are allocated
func (fs *FileSystem) checkReservedRegion() []*ValidationError {
	var problems []*ValidationError
	for i := 0; i < FirstDataBlock; i++ {
		if !fs.table.allocated[i] {
			problems = append(problems, invalid("Bitmap", "reserved block %d is not allocated", i))
		}
	}

	dir := fs.table.descriptor(DirectoryDescriptor)
	if dir.IsFree() {
		problems = append(problems, invalid("Descriptor[0]", "directory descriptor is free"))
	} else if dir.BlockIndex(0) != DirectoryBlock {
		problems = append(problems, invalid("Descriptor[0]", "directory starts at block %d, want %d",
			dir.BlockIndex(0), DirectoryBlock))
	}
	return problems
}

// checkDescriptors ensures no block is shared, every referenced block is
// allocated and every allocated data block is referenced
func (fs *FileSystem) checkDescriptors() []*ValidationError {
	var problems []*ValidationError
	owner := make(map[int]int)

	for i := range fs.table.descriptors {
		d := fs.table.descriptor(i)
		field := fmt.Sprintf("Descriptor[%d]", i)

		if d.IsFree() {
			if blocks := d.MappedBlocks(); len(blocks) > 0 {
				problems = append(problems, invalid(field, "free descriptor maps blocks %v", blocks))
			}
			continue
		}

		if d.Length < 0 || d.Length > MaxFileSize {
			problems = append(problems, invalid(field, "length %d outside [0, %d]", d.Length, MaxFileSize))
		}
		if d.BlockIndex(0) == Unmapped {
			problems = append(problems, invalid(field, "file has no first block"))
		}

		// Every byte below the length must have a block behind it
		needed := (int(d.Length) + BlockSize - 1) / BlockSize
		for slot := 0; slot < needed && slot < DirectBlocks; slot++ {
			if d.BlockIndex(slot) == Unmapped {
				problems = append(problems, invalid(field, "direct block %d unmapped below length %d", slot, d.Length))
			}
		}

		for _, block := range d.MappedBlocks() {
			if block < 0 || block >= NumBlocks {
				problems = append(problems, invalid(field, "block %d out of range", block))
				continue
			}
			if i != DirectoryDescriptor && isReserved(block) {
				problems = append(problems, invalid(field, "block %d lies in the reserved region", block))
			}
			if prev, dup := owner[block]; dup {
				problems = append(problems, invalid(field, "block %d also owned by descriptor %d", block, prev))
			}
			owner[block] = i
			if !fs.table.allocated[block] {
				problems = append(problems, invalid("Bitmap", "block %d used by descriptor %d is free", block, i))
			}
		}
	}

	for block := FirstDataBlock; block < NumBlocks; block++ {
		if _, used := owner[block]; fs.table.allocated[block] && !used {
			problems = append(problems, invalid("Bitmap", "block %d allocated but unreferenced", block))
		}
	}
	return problems
}

// checkDirectoryEntries validates the directory structure
func (fs *FileSystem) checkDirectoryEntries() []*ValidationError {
	var problems []*ValidationError

	dir := fs.table.descriptor(DirectoryDescriptor)
	if int(dir.Length) != fs.oft[DirectoryHandle].length {
		problems = append(problems, invalid("Directory", "descriptor length %d differs from open length %d",
			dir.Length, fs.oft[DirectoryHandle].length))
	}
	if dir.Length%SlotSize != 0 {
		problems = append(problems, invalid("Directory", "length %d is not a multiple of %d", dir.Length, SlotSize))
	}

	names := make(map[string]int)
	referenced := make(map[int]bool)
	err := fs.scanDirectory(func(offset int, slot DirectorySlot) bool {
		if !slot.InUse() {
			return true
		}
		field := fmt.Sprintf("Directory[%d]", offset/SlotSize)
		name := slot.Filename()
		descriptor := int(slot.Descriptor)

		if name == "" {
			problems = append(problems, invalid(field, "empty filename"))
		}
		if prev, dup := names[name]; dup {
			problems = append(problems, invalid(field, "duplicate filename %q (also at slot %d)", name, prev))
		}
		names[name] = offset / SlotSize

		if descriptor >= NumDescriptors {
			problems = append(problems, invalid(field, "descriptor %d out of range", descriptor))
			return true
		}
		if fs.table.descriptor(descriptor).IsFree() {
			problems = append(problems, invalid(field, "%q points to free descriptor %d", name, descriptor))
		}
		if referenced[descriptor] {
			problems = append(problems, invalid(field, "descriptor %d listed twice", descriptor))
		}
		referenced[descriptor] = true
		return true
	})
	if err != nil {
		problems = append(problems, invalid("Directory", "failed to read directory: %v", err))
		return problems
	}

	for i := DirectoryDescriptor + 1; i < NumDescriptors; i++ {
		if !fs.table.descriptor(i).IsFree() && !referenced[i] {
			problems = append(problems, invalid(fmt.Sprintf("Descriptor[%d]", i), "in use but not in the directory"))
		}
	}
	return problems
}

// checkOpenFileTable ensures no descriptor is bound to two handles
func (fs *FileSystem) checkOpenFileTable() []*ValidationError {
	var problems []*ValidationError

	if fs.oft[DirectoryHandle].descriptor != DirectoryDescriptor {
		problems = append(problems, invalid("OpenFileTable[0]", "not bound to the directory"))
	}

	bound := make(map[int]int)
	for handle := range fs.oft {
		of := &fs.oft[handle]
		if !of.inUse() {
			continue
		}
		field := fmt.Sprintf("OpenFileTable[%d]", handle)
		if prev, dup := bound[of.descriptor]; dup {
			problems = append(problems, invalid(field, "descriptor %d already bound to handle %d", of.descriptor, prev))
		}
		bound[of.descriptor] = handle
		if of.length > MaxFileSize {
			problems = append(problems, invalid(field, "length %d exceeds %d", of.length, MaxFileSize))
		}
	}
	return problems
}
