// file: pkg/diskimg/descriptor.go

package diskimg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	FreeLength = -1 // Length of a descriptor that is not in use
	Unmapped   = -1 // Direct block slot with no disk block behind it
)

// Descriptor is the fixed-size metadata record of one file. On disk it is
// packed as four big-endian int32 values: the length followed by the three
// direct block indices.
type Descriptor struct {
	Length int32
	Blocks [DirectBlocks]int32
}

// NewDescriptor returns a free descriptor with no blocks.
func NewDescriptor() Descriptor {
	d := Descriptor{}
	d.reset()
	return d
}

// reset marks the descriptor free and drops its block list.
func (d *Descriptor) reset() {
	d.Length = FreeLength
	for i := range d.Blocks {
		d.Blocks[i] = Unmapped
	}
}

// IsFree reports whether the descriptor is unused.
func (d *Descriptor) IsFree() bool {
	return d.Length == FreeLength
}

// BlockIndex returns the disk block behind direct slot i, or Unmapped.
func (d *Descriptor) BlockIndex(i int) int {
	if i < 0 || i >= DirectBlocks {
		return Unmapped
	}
	return int(d.Blocks[i])
}

// MappedBlocks lists the disk blocks the descriptor references, in order.
func (d *Descriptor) MappedBlocks() []int {
	var blocks []int
	for _, b := range d.Blocks {
		if b != Unmapped {
			blocks = append(blocks, int(b))
		}
	}
	return blocks
}

// MarshalBinary encodes the descriptor into its 16-byte layout.
func (d Descriptor) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, DescriptorSize))
	if err := binary.Write(buf, binary.BigEndian, d); err != nil {
		return nil, fmt.Errorf("error encoding descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a descriptor from the first 16 bytes of data.
func (d *Descriptor) UnmarshalBinary(data []byte) error {
	if len(data) < DescriptorSize {
		return fmt.Errorf("descriptor data truncated: %d bytes", len(data))
	}
	if err := binary.Read(bytes.NewReader(data[:DescriptorSize]), binary.BigEndian, d); err != nil {
		return fmt.Errorf("error decoding descriptor: %w", err)
	}
	return nil
}

func (d Descriptor) String() string {
	return fmt.Sprintf("len: %d  blocks: %v", d.Length, d.Blocks)
}
