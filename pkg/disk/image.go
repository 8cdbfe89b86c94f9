package disk

import (
	"fmt"
	"io"
)

// WriteTo streams every block in index order.
func (d *Disk) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range d.blocks {
		n, err := w.Write(d.blocks[i][:])
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write block %d: %w", i, err)
		}
	}
	return total, nil
}

// ReadFrom fills the disk from a raw image of exactly ImageSize bytes.
// A short image leaves the disk untouched.
func (d *Disk) ReadFrom(r io.Reader) (int64, error) {
	var blocks [NumBlocks]Block
	var total int64
	for i := range blocks {
		n, err := io.ReadFull(r, blocks[i][:])
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to read block %d: %w", i, err)
		}
	}
	d.blocks = blocks
	return total, nil
}

// Bytes returns a copy of the raw image.
func (d *Disk) Bytes() []byte {
	out := make([]byte, 0, ImageSize)
	for i := range d.blocks {
		out = append(out, d.blocks[i][:]...)
	}
	return out
}
