// file: cmd/create/create.go

package create

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// CreateOptions configures the disk creation
type CreateOptions struct {
	Raw   bool // Write a bare block array without the snapshot header
	Force bool // Overwrite existing file
	Quiet bool // Suppress non-error output
}

// DefaultCreateOptions returns default options for Create
func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		Raw:   false,
		Force: false,
		Quiet: false,
	}
}

// Create writes a freshly initialized disk to outPath
func Create(outPath string, opts *CreateOptions) error {
	if opts == nil {
		opts = DefaultCreateOptions()
	}

	outPath = filepath.Clean(outPath)

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("file already exists: %s (use force to overwrite)", outPath)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	fs := diskimg.NewFileSystem()
	if err := save(fs, outPath, opts.Raw); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to save disk image: %w", err)
	}

	if err := verifyDiskImage(outPath); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("disk image verification failed: %w", err)
	}

	if !opts.Quiet {
		if opts.Raw {
			fmt.Printf("Created raw disk image: %s\n", outPath)
		} else {
			fmt.Printf("Created disk image: %s (volume %s)\n", outPath, fs.VolumeID())
		}
	}
	return nil
}

func save(fs *diskimg.FileSystem, path string, raw bool) error {
	if !raw {
		return fs.SaveToFile(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fs.WriteRawImage(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// verifyDiskImage checks if the created image is valid
func verifyDiskImage(path string) error {
	fs, err := diskimg.LoadFromFile(path)
	if err != nil {
		return err
	}
	return fs.DiskCheck()
}
