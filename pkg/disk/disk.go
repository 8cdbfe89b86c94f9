package disk

import (
	"errors"
	"fmt"
)

const (
	NumBlocks = 64 // Blocks on the virtual disk
	BlockSize = 64 // Bytes per block
	ImageSize = NumBlocks * BlockSize
)

// ErrOutOfRange is returned for a block index outside the disk.
var ErrOutOfRange = errors.New("block index out of range")

// Block is one fixed-size unit of storage.
type Block [BlockSize]byte

// Disk is a fixed array of equally sized blocks. It attaches no meaning to
// the bytes it stores.
type Disk struct {
	blocks [NumBlocks]Block
}

// NewDisk returns a zeroed disk.
func NewDisk() *Disk {
	return &Disk{}
}

// ReadBlock returns a copy of the block at index.
func (d *Disk) ReadBlock(index int) (Block, error) {
	if index < 0 || index >= NumBlocks {
		return Block{}, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return d.blocks[index], nil
}

// WriteBlock replaces the block at index.
func (d *Disk) WriteBlock(index int, b Block) error {
	if index < 0 || index >= NumBlocks {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	d.blocks[index] = b
	return nil
}
