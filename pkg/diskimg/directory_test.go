// file: pkg/diskimg/directory_test.go

package diskimg

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestDirectorySlotLayout(t *testing.T) {
	slot := newDirectorySlot("abc", 5)

	data, err := slot.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	want := []byte{'a', 'b', 'c', 0, 0, 0, 0, 5}
	if !bytes.Equal(data, want) {
		t.Errorf("Wrong encoding:\n got % X\nwant % X", data, want)
	}

	var decoded DirectorySlot
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if decoded.Filename() != "abc" || decoded.Descriptor != 5 || !decoded.InUse() {
		t.Errorf("Decoded slot: %+v", decoded)
	}
}

func TestDirectorySlotTerminator(t *testing.T) {
	slot := DirectorySlot{Name: [NameSize]byte{'w', 'x', 'y', 'z'}, Descriptor: 2}

	data, _ := slot.MarshalBinary()
	if data[NameSize-1] != 0 {
		t.Errorf("Last name byte: got %#x, want 0", data[NameSize-1])
	}
	if slot.Filename() != "wxy" {
		t.Errorf("Filename: got %q, want %q", slot.Filename(), "wxy")
	}
}

func TestEmptyDirectorySlot(t *testing.T) {
	if emptyDirectorySlot().InUse() {
		t.Error("Empty slot reported in use")
	}
	var zero DirectorySlot
	if zero.InUse() {
		t.Error("Zero slot reported in use")
	}
}

func TestDirectorySlotReuse(t *testing.T) {
	fs := NewFileSystem()
	for _, name := range []string{"a", "b", "c"} {
		if err := fs.Create(name); err != nil {
			t.Fatalf("Create(%q) failed: %v", name, err)
		}
	}

	fs.Destroy("b")
	if err := fs.Create("d"); err != nil {
		t.Fatalf("Create(d) failed: %v", err)
	}

	names, err := fs.ListDirectory()
	if err != nil {
		t.Fatalf("ListDirectory failed: %v", err)
	}
	if want := []string{"a", "d", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Directory order: got %v, want %v", names, want)
	}

	// The freed slot was reused so the directory did not grow
	dir, _ := fs.table.Descriptor(DirectoryDescriptor)
	if dir.Length != 3*SlotSize {
		t.Errorf("Directory length: got %d, want %d", dir.Length, 3*SlotSize)
	}
}

func TestDirectoryGrowsIntoNewBlock(t *testing.T) {
	fs := NewFileSystem()
	perBlock := BlockSize / SlotSize

	for i := 0; i <= perBlock; i++ {
		if err := fs.Create(fmt.Sprintf("d%d", i)); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	dir, _ := fs.table.Descriptor(DirectoryDescriptor)
	if len(dir.MappedBlocks()) != 2 {
		t.Errorf("Directory blocks: got %v, want two", dir.MappedBlocks())
	}
	names, _ := fs.ListDirectory()
	if len(names) != perBlock+1 {
		t.Errorf("Listed %d files, want %d", len(names), perBlock+1)
	}
	if err := fs.DiskCheck(); err != nil {
		t.Errorf("DiskCheck failed: %v", err)
	}
}

func TestStatMissing(t *testing.T) {
	fs := NewFileSystem()
	if _, err := fs.Stat("xyz"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Stat: got %v, want ErrFileNotFound", err)
	}
}
