// file: pkg/diskimg/allocation.go

package diskimg

import (
	"errors"
	"fmt"

	"github.com/ha1tch/ldiskfs/internal"
	"github.com/ha1tch/ldiskfs/pkg/disk"
)

// AllocationTable holds the free-space bit vector and the descriptor table
type AllocationTable struct {
	allocated   [NumBlocks]bool // true if block is allocated
	descriptors [NumDescriptors]Descriptor
}

// NewAllocationTable returns the table of a freshly initialized disk: the
// reserved region allocated and descriptor 0 bound to the directory block.
func NewAllocationTable() *AllocationTable {
	at := &AllocationTable{}
	for i := range at.descriptors {
		at.descriptors[i] = NewDescriptor()
	}
	for i := 0; i < FirstDataBlock; i++ {
		at.allocated[i] = true
	}

	dir := &at.descriptors[DirectoryDescriptor]
	dir.Length = 0
	dir.Blocks[0] = DirectoryBlock

	return at
}

// isReserved reports whether a block belongs to the reserved region
func isReserved(block int) bool {
	return block >= 0 && block < FirstDataBlock
}

// SetBit marks a block as allocated
func (at *AllocationTable) SetBit(block int) error {
	if block < 0 || block >= NumBlocks {
		return fmt.Errorf("%w: %d", ErrOutOfRange, block)
	}
	at.allocated[block] = true
	return nil
}

// ClearBit marks a block as free. Reserved blocks are never released.
func (at *AllocationTable) ClearBit(block int) error {
	if block < 0 || block >= NumBlocks {
		return fmt.Errorf("%w: %d", ErrOutOfRange, block)
	}
	if isReserved(block) {
		return nil
	}
	at.allocated[block] = false
	return nil
}

// IsAllocated checks if a specific block is allocated
func (at *AllocationTable) IsAllocated(block int) (bool, error) {
	if block < 0 || block >= NumBlocks {
		return false, fmt.Errorf("%w: %d", ErrOutOfRange, block)
	}
	return at.allocated[block], nil
}

// FindFreeDataBlock returns the lowest free block outside the reserved region
func (at *AllocationTable) FindFreeDataBlock() (int, bool) {
	for i := FirstDataBlock; i < NumBlocks; i++ {
		if !at.allocated[i] {
			return i, true
		}
	}
	return -1, false
}

// FindFreeDescriptor returns the lowest free descriptor. Descriptor 0
// belongs to the directory and is never handed out.
func (at *AllocationTable) FindFreeDescriptor() (int, bool) {
	for i := DirectoryDescriptor + 1; i < NumDescriptors; i++ {
		if at.descriptors[i].IsFree() {
			return i, true
		}
	}
	return -1, false
}

// FreeBlockCount returns the number of unallocated blocks
func (at *AllocationTable) FreeBlockCount() int {
	free := 0
	for _, allocated := range at.allocated {
		if !allocated {
			free++
		}
	}
	return free
}

// FreeDescriptorCount returns the number of descriptors available to files
func (at *AllocationTable) FreeDescriptorCount() int {
	free := 0
	for i := DirectoryDescriptor + 1; i < NumDescriptors; i++ {
		if at.descriptors[i].IsFree() {
			free++
		}
	}
	return free
}

// Descriptor returns a copy of descriptor i
func (at *AllocationTable) Descriptor(i int) (Descriptor, error) {
	if i < 0 || i >= NumDescriptors {
		return Descriptor{}, fmt.Errorf("%w: descriptor %d", ErrOutOfRange, i)
	}
	return at.descriptors[i], nil
}

// descriptor gives the engine direct access; callers validate i
func (at *AllocationTable) descriptor(i int) *Descriptor {
	return &at.descriptors[i]
}

// EncodeBitmap packs the bit vector into block 0's layout: bit i is stored
// in byte i/8 under mask 1<<(i%8), the rest of the block is zero.
func (at *AllocationTable) EncodeBitmap() disk.Block {
	var b disk.Block
	for i, allocated := range at.allocated {
		if allocated {
			idx, mask := internal.BitPosition(i)
			b[idx] |= mask
		}
	}
	return b
}

// DecodeBitmap rebuilds the bit vector from block 0
func (at *AllocationTable) DecodeBitmap(b disk.Block) {
	for i := range at.allocated {
		idx, mask := internal.BitPosition(i)
		at.allocated[i] = b[idx]&mask != 0
	}
}

// EncodeDescriptorBlock packs descriptors 4k..4k+3 into one block
func (at *AllocationTable) EncodeDescriptorBlock(k int) (disk.Block, error) {
	var b disk.Block
	if k < 0 || k >= DescriptorBlocks {
		return b, fmt.Errorf("%w: descriptor block %d", ErrOutOfRange, k)
	}

	for i := 0; i < DescriptorsPerBlock; i++ {
		data, err := at.descriptors[k*DescriptorsPerBlock+i].MarshalBinary()
		if err != nil {
			return b, err
		}
		copy(b[i*DescriptorSize:], data)
	}
	return b, nil
}

// DecodeDescriptorBlock loads descriptors 4k..4k+3 from one block
func (at *AllocationTable) DecodeDescriptorBlock(k int, b disk.Block) error {
	if k < 0 || k >= DescriptorBlocks {
		return fmt.Errorf("%w: descriptor block %d", ErrOutOfRange, k)
	}

	for i := 0; i < DescriptorsPerBlock; i++ {
		offset := i * DescriptorSize
		d := &at.descriptors[k*DescriptorsPerBlock+i]
		if err := d.UnmarshalBinary(b[offset : offset+DescriptorSize]); err != nil {
			return fmt.Errorf("descriptor %d: %w", k*DescriptorsPerBlock+i, err)
		}
	}
	return nil
}

// flushTo writes the bitmap and descriptor table into their header blocks
func (at *AllocationTable) flushTo(d *disk.Disk) error {
	if err := d.WriteBlock(BitmapBlock, at.EncodeBitmap()); err != nil {
		return err
	}
	for k := 0; k < DescriptorBlocks; k++ {
		b, err := at.EncodeDescriptorBlock(k)
		if err != nil {
			return err
		}
		if err := d.WriteBlock(FirstDescriptorBlock+k, b); err != nil {
			return err
		}
	}
	return nil
}

// loadFrom rebuilds the table from the header blocks of d
func (at *AllocationTable) loadFrom(d *disk.Disk) error {
	b, err := d.ReadBlock(BitmapBlock)
	if err != nil {
		return err
	}
	at.DecodeBitmap(b)

	for k := 0; k < DescriptorBlocks; k++ {
		b, err := d.ReadBlock(FirstDescriptorBlock + k)
		if err != nil {
			return err
		}
		if err := at.DecodeDescriptorBlock(k, b); err != nil {
			return err
		}
	}

	dir := at.descriptors[DirectoryDescriptor]
	if dir.IsFree() || dir.BlockIndex(0) != DirectoryBlock {
		return errors.New("directory descriptor is not bound to the directory block")
	}
	return nil
}
