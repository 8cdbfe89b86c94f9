// file: pkg/diskimg/integration_test.go

package diskimg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFullDiskOperations(t *testing.T) {
	tmpDir := t.TempDir()
	diskPath := filepath.Join(tmpDir, "test.img")
	fs := NewFileSystem()

	files := []struct {
		name    string
		content []byte
	}{
		{"one", []byte("10 PRINT \"HELLO\"\n")},
		{"two", []byte{0xF3, 0xAF, 0x32}},
		{"thr", bytes.Repeat([]byte("sample "), 20)},
	}

	for _, f := range files {
		path := filepath.Join(tmpDir, f.name)
		if err := os.WriteFile(path, f.content, 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("disk lifecycle", func(t *testing.T) {
		if err := fs.SaveToFile(diskPath); err != nil {
			t.Fatalf("Failed to save empty disk: %v", err)
		}

		for _, f := range files {
			if err := fs.ImportFile(filepath.Join(tmpDir, f.name), f.name, nil); err != nil {
				t.Errorf("Failed to import %s: %v", f.name, err)
			}
		}

		if err := fs.SaveToFile(diskPath); err != nil {
			t.Fatalf("Failed to save populated disk: %v", err)
		}

		newFS, err := LoadFromFile(diskPath)
		if err != nil {
			t.Fatalf("Failed to reload disk: %v", err)
		}
		if err := newFS.DiskCheck(); err != nil {
			t.Errorf("Reloaded disk failed check: %v", err)
		}

		for _, f := range files {
			outPath := filepath.Join(tmpDir, "out_"+f.name)
			if err := newFS.ExportFile(f.name, outPath); err != nil {
				t.Errorf("Failed to export %s: %v", f.name, err)
				continue
			}
			got, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, f.content) {
				t.Errorf("Content mismatch for %s", f.name)
			}
		}
	})

	t.Run("usage", func(t *testing.T) {
		u, err := fs.Usage()
		if err != nil {
			t.Fatalf("Usage failed: %v", err)
		}
		// thr is 140 bytes and spans three blocks
		if u.Files != 3 || u.UsedBlocks != 5 {
			t.Errorf("Usage: %+v", u)
		}
		if u.FreeBlocks != NumBlocks-FirstDataBlock-5 {
			t.Errorf("FreeBlocks: got %d", u.FreeBlocks)
		}
		if u.FreeDescriptors != NumDescriptors-4 {
			t.Errorf("FreeDescriptors: got %d", u.FreeDescriptors)
		}
		total := 0
		for _, f := range files {
			total += len(f.content)
		}
		if u.Bytes != total {
			t.Errorf("Bytes: got %d, want %d", u.Bytes, total)
		}
	})

	t.Run("block map", func(t *testing.T) {
		blocks, err := fs.BlockMap()
		if err != nil {
			t.Fatalf("BlockMap failed: %v", err)
		}
		if len(blocks) != NumBlocks {
			t.Fatalf("BlockMap has %d entries", len(blocks))
		}

		want := map[int]BlockKind{
			BitmapBlock:          BlockBitmap,
			FirstDescriptorBlock: BlockDescriptorTable,
			DirectoryBlock:       BlockDirectory,
			FirstDataBlock:       BlockFile,
			NumBlocks - 1:        BlockFree,
		}
		for index, kind := range want {
			if blocks[index].Kind != kind {
				t.Errorf("Block %d: got %s, want %s", index, blocks[index].Kind, kind)
			}
		}
		if blocks[FirstDataBlock].Name != "one" {
			t.Errorf("Block %d owner: got %q", FirstDataBlock, blocks[FirstDataBlock].Name)
		}
	})

	t.Run("destroy and reuse", func(t *testing.T) {
		if err := fs.Destroy("two"); err != nil {
			t.Fatalf("Destroy failed: %v", err)
		}
		if err := fs.Create("new"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		names, _ := fs.ListDirectory()
		if len(names) != 3 || names[1] != "new" {
			t.Errorf("Directory after reuse: %v", names)
		}
		if err := fs.DiskCheck(); err != nil {
			t.Errorf("DiskCheck failed: %v", err)
		}
	})
}
