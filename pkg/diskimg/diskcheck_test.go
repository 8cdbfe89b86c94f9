// file: pkg/diskimg/diskcheck_test.go

package diskimg

import (
	"strings"
	"testing"
)

func hasProblem(problems []*ValidationError, field, fragment string) bool {
	for _, p := range problems {
		if p.Field == field && strings.Contains(p.Message, fragment) {
			return true
		}
	}
	return false
}

func TestDiskCheckClean(t *testing.T) {
	fs := NewFileSystem()
	if err := fs.DiskCheck(); err != nil {
		t.Fatalf("Fresh disk failed check: %v", err)
	}

	handle := openNewFile(t, fs, "abc")
	fs.Write(handle, make([]byte, 150), 150)
	fs.Create("def")
	fs.Create("ghi")
	fs.Destroy("def")

	if problems := fs.Validate(); len(problems) != 0 {
		t.Errorf("Unexpected problems: %v", problems)
	}
}

func TestDiskCheckFindsCorruption(t *testing.T) {
	tests := []struct {
		name     string
		corrupt  func(fs *FileSystem)
		field    string
		fragment string
	}{
		{
			name:     "reserved bit cleared",
			corrupt:  func(fs *FileSystem) { fs.table.allocated[3] = false },
			field:    "Bitmap",
			fragment: "reserved block 3",
		},
		{
			name:     "orphan block",
			corrupt:  func(fs *FileSystem) { fs.table.allocated[40] = true },
			field:    "Bitmap",
			fragment: "block 40 allocated but unreferenced",
		},
		{
			name:     "referenced block free",
			corrupt:  func(fs *FileSystem) { fs.table.allocated[FirstDataBlock] = false },
			field:    "Bitmap",
			fragment: "is free",
		},
		{
			name: "shared block",
			corrupt: func(fs *FileSystem) {
				fs.table.descriptor(2).Blocks[1] = FirstDataBlock
			},
			field:    "Descriptor[2]",
			fragment: "also owned by descriptor 1",
		},
		{
			name: "length too large",
			corrupt: func(fs *FileSystem) {
				fs.table.descriptor(1).Length = MaxFileSize + 1
			},
			field:    "Descriptor[1]",
			fragment: "outside",
		},
		{
			name: "length without blocks",
			corrupt: func(fs *FileSystem) {
				fs.table.descriptor(2).Length = 100
			},
			field:    "Descriptor[2]",
			fragment: "unmapped below length",
		},
		{
			name: "unlisted descriptor",
			corrupt: func(fs *FileSystem) {
				d := fs.table.descriptor(7)
				d.Length = 0
				d.Blocks[0] = 30
				fs.table.allocated[30] = true
			},
			field:    "Descriptor[7]",
			fragment: "not in the directory",
		},
		{
			name: "slot points to free descriptor",
			corrupt: func(fs *FileSystem) {
				fs.insertSlot(2*SlotSize, "bad", 9)
			},
			field:    "Directory[2]",
			fragment: "free descriptor 9",
		},
		{
			name: "duplicate name",
			corrupt: func(fs *FileSystem) {
				fs.writeSlot(SlotSize, newDirectorySlot("one", 2))
			},
			field:    "Directory[1]",
			fragment: "duplicate filename",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSystem()
			fs.Create("one")
			fs.Create("two")

			tt.corrupt(fs)

			problems := fs.Validate()
			if !hasProblem(problems, tt.field, tt.fragment) {
				t.Errorf("Expected %s problem containing %q, got %v", tt.field, tt.fragment, problems)
			}
			if fs.DiskCheck() == nil {
				t.Error("DiskCheck returned nil")
			}
		})
	}
}
