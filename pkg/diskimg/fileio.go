// file: pkg/diskimg/fileio.go

package diskimg

import (
	"errors"
	"fmt"

	"github.com/ha1tch/ldiskfs/internal"
)

// Seek moves the cursor of an open file to pos and returns it. pos may be
// at most one byte past the current length and never beyond MaxFileSize.
func (fs *FileSystem) Seek(handle, pos int) (int, error) {
	of, err := fs.entry(handle)
	if err != nil {
		return 0, err
	}
	if err := fs.seek(of, pos); err != nil {
		return 0, err
	}
	return pos, nil
}

// Read reads up to count bytes from the cursor. The result is short when
// the file ends first.
func (fs *FileSystem) Read(handle, count int) ([]byte, error) {
	of, err := fs.entry(handle)
	if err != nil {
		return nil, err
	}
	return fs.read(of, count)
}

// Write writes the first count bytes of data at the cursor and returns how
// many were written. A short count without error means the disk ran out of
// free blocks or the file reached MaxFileSize.
func (fs *FileSystem) Write(handle int, data []byte, count int) (int, error) {
	of, err := fs.entry(handle)
	if err != nil {
		return 0, err
	}
	return fs.write(of, data, count)
}

func (fs *FileSystem) seek(of *openFile, pos int) error {
	if pos < 0 || pos > MaxFileSize || pos > of.length+1 {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}

	target := internal.DirectIndex(pos, BlockSize, DirectBlocks)
	if target != of.cached {
		d := fs.table.descriptor(of.descriptor)
		if d.BlockIndex(target) == Unmapped {
			// Appending on a block boundary: keep the previous block, the
			// next write allocates the new one
			if pos != of.length || pos%BlockSize != 0 || d.BlockIndex(target-1) == Unmapped {
				return fmt.Errorf("%w: %d (block %d not mapped)", ErrInvalidPosition, pos, target)
			}
			target--
		}
		if err := fs.load(of, target); err != nil {
			return err
		}
	}

	of.cursor = pos
	return nil
}

func (fs *FileSystem) read(of *openFile, count int) ([]byte, error) {
	n := min(count, of.length-of.cursor)
	if n < 0 {
		n = 0
	}

	out := make([]byte, 0, n)
	for len(out) < n {
		if target := of.cursor / BlockSize; target != of.cached {
			if err := fs.load(of, target); err != nil {
				return out, err
			}
		}

		offset := of.cursor % BlockSize
		chunk := min(n-len(out), BlockSize-offset)
		out = append(out, of.buffer[offset:offset+chunk]...)
		of.cursor += chunk
	}
	return out, nil
}

func (fs *FileSystem) write(of *openFile, data []byte, count int) (int, error) {
	count = min(count, len(data))
	n := min(count, MaxFileSize-of.cursor)
	if n < 0 {
		n = 0
	}

	var err error
	written := 0
	for written < n {
		if target := of.cursor / BlockSize; target != of.cached {
			if err = fs.extend(of, target); err != nil {
				break
			}
		}

		offset := of.cursor % BlockSize
		chunk := min(n-written, BlockSize-offset)
		copy(of.buffer[offset:offset+chunk], data[written:written+chunk])
		of.cursor += chunk
		written += chunk
	}

	d := fs.table.descriptor(of.descriptor)
	if of.cursor > int(d.Length) {
		d.Length = int32(of.cursor)
	}
	of.length = int(d.Length)

	if err != nil && !errors.Is(err, ErrDiskFull) {
		return written, err
	}
	return written, nil
}

// extend makes direct block target current, allocating a data block for it
// first when the file has none there yet
func (fs *FileSystem) extend(of *openFile, target int) error {
	d := fs.table.descriptor(of.descriptor)
	if d.BlockIndex(target) == Unmapped {
		block, ok := fs.table.FindFreeDataBlock()
		if !ok {
			return ErrDiskFull
		}
		if err := fs.table.SetBit(block); err != nil {
			return err
		}
		d.Blocks[target] = int32(block)
	}
	return fs.load(of, target)
}

// load flushes the cached block and replaces it with direct block target
func (fs *FileSystem) load(of *openFile, target int) error {
	if target == of.cached {
		return nil
	}

	d := fs.table.descriptor(of.descriptor)
	next := d.BlockIndex(target)
	if next == Unmapped {
		return fmt.Errorf("%w: block %d of descriptor %d not mapped", ErrInvalidPosition, target, of.descriptor)
	}
	if err := fs.flush(of); err != nil {
		return err
	}

	buf, err := fs.disk.ReadBlock(next)
	if err != nil {
		return err
	}
	of.buffer = buf
	of.cached = target
	return nil
}

// flush writes the cached block back to the disk block it came from
func (fs *FileSystem) flush(of *openFile) error {
	d := fs.table.descriptor(of.descriptor)
	block := d.BlockIndex(of.cached)
	if block == Unmapped {
		return nil
	}
	return fs.disk.WriteBlock(block, of.buffer)
}
