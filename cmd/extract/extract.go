// file: cmd/extract/extract.go

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// ExtractOptions configures the file extraction operation
type ExtractOptions struct {
	OutputDir string // Directory to extract files to
	Overwrite bool   // Allow overwriting existing files
	Quiet     bool   // Suppress non-error output
}

// DefaultExtractOptions returns default options for Extract
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{
		OutputDir: "",
		Overwrite: false,
		Quiet:     false,
	}
}

// Extract copies a file from the disk image to the host filesystem
func Extract(diskPath string, filename string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	fs, err := loadDisk(diskPath)
	if err != nil {
		return err
	}
	return extractFile(fs, filename, opts)
}

// loadDisk reads the snapshot at diskPath
func loadDisk(diskPath string) (*diskimg.FileSystem, error) {
	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("disk image does not exist: %w", err)
	}
	fs, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open disk: %w", err)
	}
	return fs, nil
}

func extractFile(fs *diskimg.FileSystem, filename string, opts *ExtractOptions) error {
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outPath := filepath.Join(opts.OutputDir, filename)

	if !opts.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("output file already exists: %s (use overwrite to replace)", outPath)
		}
	}

	if err := fs.ExportFile(filename, outPath); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to extract file: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Extracted %s to %s\n", filename, outPath)
	}
	return nil
}

// ExtractAll extracts all files from the disk image
func ExtractAll(diskPath string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}

	fs, err := loadDisk(diskPath)
	if err != nil {
		return err
	}

	names, err := fs.ListDirectory()
	if err != nil {
		return fmt.Errorf("listing %s: %w", diskPath, err)
	}

	extracted := 0
	for _, name := range names {
		if err := extractFile(fs, name, opts); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		extracted++
	}

	if !opts.Quiet {
		fmt.Printf("%d of %d files extracted\n", extracted, len(names))
	}
	return nil
}
