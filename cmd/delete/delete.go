// file: cmd/delete/delete.go

package delete

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// DeleteOptions configures the deletion operation
type DeleteOptions struct {
	Force bool      // Skip confirmation
	Quiet bool      // Suppress non-error output
	Input io.Reader // Confirmation source, stdin when nil
}

// DefaultDeleteOptions returns default options for Delete
func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{
		Force: false,
		Quiet: false,
	}
}

// Delete destroys a file inside the disk image
func Delete(diskPath string, filename string, opts *DeleteOptions) error {
	if opts == nil {
		opts = DefaultDeleteOptions()
	}

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	fs, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	if _, err := fs.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	if !opts.Force {
		in := opts.Input
		if in == nil {
			in = os.Stdin
		}
		fmt.Printf("Delete %s? (y/N) ", filename)
		response, _ := bufio.NewReader(in).ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(response)), "y") {
			if !opts.Quiet {
				fmt.Println("Deletion cancelled")
			}
			return nil
		}
	}

	if err := fs.Destroy(filename); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	if err := fs.SaveToFile(diskPath); err != nil {
		return fmt.Errorf("failed to save disk: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Deleted %s\n", filename)
	}
	return nil
}
