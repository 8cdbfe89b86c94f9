// file: cmd/add/add.go

package add

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// AddOptions configures the Add operation
type AddOptions struct {
	Name  string // Name on the disk, derived from the host name when empty
	Force bool   // Allow overwriting existing files
	Quiet bool   // Suppress non-error output
}

// DefaultAddOptions returns default options for Add
func DefaultAddOptions() *AddOptions {
	return &AddOptions{
		Name:  "",
		Force: false,
		Quiet: false,
	}
}

// diskName derives a disk name from a host path: the base name without its
// extension, cut to the significant length
func diskName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if len(base) > diskimg.MaxNameLength {
		base = base[:diskimg.MaxNameLength]
	}
	return base
}

// Add imports a host file into the disk image
func Add(diskPath string, filePath string, opts *AddOptions) error {
	if opts == nil {
		opts = DefaultAddOptions()
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	if info.Size() > diskimg.MaxFileSize {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", diskimg.ErrFileTooLarge, filePath, info.Size(), diskimg.MaxFileSize)
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	fs, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = diskName(filePath)
	}

	importOpts := &diskimg.ImportOptions{Overwrite: opts.Force}
	if err := fs.ImportFile(filePath, name, importOpts); err != nil {
		return fmt.Errorf("failed to import file: %w", err)
	}

	if err := fs.SaveToFile(diskPath); err != nil {
		return fmt.Errorf("failed to save disk: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Added %s to disk image as %s\n", filepath.Base(filePath), name)
	}
	return nil
}
