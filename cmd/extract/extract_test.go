// file: cmd/extract/extract_test.go

package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

func TestExtractAll(t *testing.T) {
	dir := t.TempDir()
	diskPath := filepath.Join(dir, "disk.img")

	fs := diskimg.NewFileSystem()
	contents := map[string]string{"a": "alpha", "b": "", "c": "gamma ray"}
	for name, data := range contents {
		if err := fs.WriteFile(name, []byte(data), false); err != nil {
			t.Fatalf("WriteFile(%q) failed: %v", name, err)
		}
	}
	if err := fs.SaveToFile(diskPath); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	opts := &ExtractOptions{OutputDir: outDir, Quiet: true}
	if err := ExtractAll(diskPath, opts); err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}

	for name, want := range contents {
		got, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("%s not extracted: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}

	// A second run refuses to overwrite
	if err := Extract(diskPath, "a", opts); err == nil {
		t.Error("Extract over an existing file succeeded")
	}
	opts.Overwrite = true
	if err := Extract(diskPath, "a", opts); err != nil {
		t.Errorf("Extract with overwrite failed: %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	dir := t.TempDir()
	diskPath := filepath.Join(dir, "disk.img")
	if err := diskimg.NewFileSystem().SaveToFile(diskPath); err != nil {
		t.Fatal(err)
	}

	opts := &ExtractOptions{OutputDir: dir, Quiet: true}
	if err := Extract(diskPath, "zz", opts); err == nil {
		t.Error("Extract of a missing file succeeded")
	}
	if _, err := os.Stat(filepath.Join(dir, "zz")); !os.IsNotExist(err) {
		t.Error("Partial output left behind")
	}
}
