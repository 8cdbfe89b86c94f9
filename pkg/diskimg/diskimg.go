// file: pkg/diskimg/diskimg.go

package diskimg

import (
	"github.com/google/uuid"

	"github.com/ha1tch/ldiskfs/pkg/disk"
)

const (
	BlockSize = disk.BlockSize
	NumBlocks = disk.NumBlocks

	DirectBlocks = 3                        // Direct block slots per descriptor
	MaxFileSize  = BlockSize * DirectBlocks // 192 bytes

	DescriptorSize      = 16
	DescriptorsPerBlock = BlockSize / DescriptorSize
	DescriptorBlocks    = 6
	NumDescriptors      = DescriptorBlocks * DescriptorsPerBlock // 24

	BitmapBlock          = 0
	FirstDescriptorBlock = BitmapBlock + 1
	DirectoryBlock       = FirstDescriptorBlock + DescriptorBlocks // First directory data block
	FirstDataBlock       = DirectoryBlock + 1                      // Everything below is reserved

	DirectoryDescriptor = 0
	DirectoryHandle     = 0
	OpenFileTableSize   = 4

	SlotSize          = 8 // Directory slot: 4 bytes name, 4 bytes descriptor index
	NameSize          = 4
	MaxNameLength     = NameSize - 1
	MaxDirectorySlots = MaxFileSize / SlotSize
)

// FileSystem owns every piece of mutable state of one virtual disk: the
// block array, the allocation table and the open file table. It is not safe
// for concurrent use; a host serving several callers must serialize them.
type FileSystem struct {
	disk     *disk.Disk
	table    *AllocationTable
	oft      [OpenFileTableSize]openFile
	volumeID uuid.UUID
}

// NewFileSystem returns a freshly initialized disk with an empty directory.
func NewFileSystem() *FileSystem {
	fs := &FileSystem{}
	fs.format()
	return fs
}

// format resets the file system to an empty disk.
func (fs *FileSystem) format() {
	fs.disk = disk.NewDisk()
	fs.table = NewAllocationTable()
	fs.volumeID = uuid.New()
	fs.resetOpenFileTable()

	// Block 7 is zeroed on a new disk, so binding cannot fail
	_ = fs.bindDirectory()
}

// VolumeID identifies the disk across snapshots. Disks restored from a raw
// image without a header report uuid.Nil.
func (fs *FileSystem) VolumeID() uuid.UUID {
	return fs.volumeID
}

// resetOpenFileTable unbinds every entry, including the directory.
func (fs *FileSystem) resetOpenFileTable() {
	for i := range fs.oft {
		fs.oft[i].reset()
	}
}

// bindDirectory loads the directory's first block into slot 0.
func (fs *FileSystem) bindDirectory() error {
	d := fs.table.descriptor(DirectoryDescriptor)
	buf, err := fs.disk.ReadBlock(d.BlockIndex(0))
	if err != nil {
		return err
	}
	fs.oft[DirectoryHandle].bind(DirectoryDescriptor, int(d.Length), buf)
	return nil
}
