// file: pkg/diskimg/snapshot.go

package diskimg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/diskfs/go-diskfs/filesystem/ext4/crc"
	"github.com/google/uuid"
)

const (
	// Snapshot header constants
	SnapshotMagic      = "LDSK"
	SnapshotVersion    = 1
	SnapshotHeaderSize = 32
)

// LoadStatus tells how Initialize produced the disk
type LoadStatus int

const (
	StatusInitialized LoadStatus = iota // No snapshot existed, fresh disk
	StatusRestored                      // Disk loaded from a snapshot
)

func (s LoadStatus) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusRestored:
		return "restored"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// SnapshotHeader precedes the raw block array in a saved snapshot
type SnapshotHeader struct {
	Magic     [4]byte   // "LDSK"
	Version   uint16    // Format version
	BlockSize uint16    // Bytes per block
	NumBlocks uint16    // Blocks in the payload
	Flags     uint16    // Reserved, zero
	VolumeID  uuid.UUID // Volume UUID
	Checksum  uint32    // CRC32C of the payload
}

// NewSnapshotHeader creates a header describing payload
func NewSnapshotHeader(volumeID uuid.UUID, payload []byte) *SnapshotHeader {
	h := &SnapshotHeader{
		Version:   SnapshotVersion,
		BlockSize: BlockSize,
		NumBlocks: NumBlocks,
		VolumeID:  volumeID,
		Checksum:  crc.CRC32c(0, payload),
	}
	copy(h.Magic[:], SnapshotMagic)
	return h
}

// hasSnapshotMagic reports whether data starts with a snapshot header
func hasSnapshotMagic(data []byte) bool {
	return len(data) >= len(SnapshotMagic) && string(data[:len(SnapshotMagic)]) == SnapshotMagic
}

// FromBytes parses a header from its big-endian layout
func (h *SnapshotHeader) FromBytes(data []byte) error {
	if len(data) < SnapshotHeaderSize {
		return errors.New("snapshot header truncated")
	}
	return binary.Read(bytes.NewReader(data[:SnapshotHeaderSize]), binary.BigEndian, h)
}

func (h *SnapshotHeader) toBytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, SnapshotHeaderSize))
	binary.Write(buf, binary.BigEndian, h)
	return buf.Bytes()
}

// Validate checks the header against this disk geometry and the payload
func (h *SnapshotHeader) Validate(payload []byte) error {
	if string(h.Magic[:]) != SnapshotMagic {
		return errors.New("invalid snapshot signature")
	}
	if h.Version > SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version: %d", h.Version)
	}
	if h.BlockSize != BlockSize || h.NumBlocks != NumBlocks {
		return fmt.Errorf("geometry mismatch: %d blocks of %d bytes", h.NumBlocks, h.BlockSize)
	}
	if len(payload) != BlockSize*NumBlocks {
		return fmt.Errorf("payload is %d bytes, want %d", len(payload), BlockSize*NumBlocks)
	}
	if sum := crc.CRC32c(0, payload); sum != h.Checksum {
		return fmt.Errorf("checksum mismatch: got %08x, want %08x", sum, h.Checksum)
	}
	return nil
}
