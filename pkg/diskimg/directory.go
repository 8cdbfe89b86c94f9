// file: pkg/diskimg/directory.go

package diskimg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DirectorySlot is one 8-byte record of the directory file. The last name
// byte is always NUL, so at most three name bytes are significant.
type DirectorySlot struct {
	Name       [NameSize]byte
	Descriptor int32
}

// newDirectorySlot builds a slot for an already normalized name
func newDirectorySlot(name string, descriptor int) DirectorySlot {
	slot := DirectorySlot{Descriptor: int32(descriptor)}
	copy(slot.Name[:MaxNameLength], name)
	return slot
}

// emptyDirectorySlot is written over a destroyed file's slot
func emptyDirectorySlot() DirectorySlot {
	return DirectorySlot{Descriptor: -1}
}

// InUse reports whether the slot names a file. Slots never written and
// slots of destroyed files both carry a descriptor index <= 0.
func (s DirectorySlot) InUse() bool {
	return s.Descriptor > 0
}

// Filename returns the stored name
func (s DirectorySlot) Filename() string {
	name := s.Name[:MaxNameLength]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(bytes.TrimSpace(name))
}

func (s DirectorySlot) MarshalBinary() ([]byte, error) {
	s.Name[NameSize-1] = 0
	buf := bytes.NewBuffer(make([]byte, 0, SlotSize))
	if err := binary.Write(buf, binary.BigEndian, s); err != nil {
		return nil, fmt.Errorf("error encoding directory slot: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *DirectorySlot) UnmarshalBinary(data []byte) error {
	if len(data) < SlotSize {
		return fmt.Errorf("directory slot truncated: %d bytes", len(data))
	}
	if err := binary.Read(bytes.NewReader(data[:SlotSize]), binary.BigEndian, s); err != nil {
		return fmt.Errorf("error decoding directory slot: %w", err)
	}
	s.Name[NameSize-1] = 0
	return nil
}

// FileInfo describes one file listed in the directory
type FileInfo struct {
	Name       string `json:"name"`
	Descriptor int    `json:"descriptor"`
	Size       int    `json:"size"`
	Blocks     []int  `json:"blocks"`
	Offset     int    `json:"directory_offset"`
}

// ListDirectory returns the names of all files in stored order
func (fs *FileSystem) ListDirectory() ([]string, error) {
	files, err := fs.Files()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names, nil
}

// Files returns every file in the directory, in stored order
func (fs *FileSystem) Files() ([]FileInfo, error) {
	var files []FileInfo
	err := fs.scanDirectory(func(offset int, slot DirectorySlot) bool {
		if !slot.InUse() {
			return true
		}
		info := FileInfo{
			Name:       slot.Filename(),
			Descriptor: int(slot.Descriptor),
			Offset:     offset,
		}
		if int(slot.Descriptor) < NumDescriptors {
			d := fs.table.descriptor(int(slot.Descriptor))
			info.Size = int(d.Length)
			info.Blocks = d.MappedBlocks()
		}
		files = append(files, info)
		return true
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Stat returns the directory information for one file
func (fs *FileSystem) Stat(name string) (FileInfo, error) {
	name, err := normalizeFilename(name)
	if err != nil {
		return FileInfo{}, err
	}

	files, err := fs.Files()
	if err != nil {
		return FileInfo{}, err
	}
	for _, f := range files {
		if f.Name == name {
			return f, nil
		}
	}
	return FileInfo{}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
}
