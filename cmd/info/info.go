// file: cmd/info/info.go

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// DiskInfo represents disk information in a structured format
type DiskInfo struct {
	Path       string              `json:"path"`
	VolumeID   string              `json:"volume_id"`
	Usage      diskimg.Usage       `json:"usage"`
	Blocks     []diskimg.BlockInfo `json:"blocks,omitempty"`
	Modified   time.Time           `json:"modified_time,omitempty"`
	Validation []string            `json:"validation_issues,omitempty"`
}

// InfoOptions configures the information display
type InfoOptions struct {
	JSON     bool      // Output in JSON format
	Verbose  bool      // Include the per-block map
	Validate bool      // Perform disk validation
	Quiet    bool      // Suppress non-error output
	Output   io.Writer // Destination, stdout when nil
}

// DefaultInfoOptions returns default options for Info
func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		JSON:     false,
		Verbose:  false,
		Validate: true,
		Quiet:    false,
	}
}

// Info displays information about a disk image
func Info(diskPath string, opts *InfoOptions) error {
	if opts == nil {
		opts = DefaultInfoOptions()
	}
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}

	stat, err := os.Stat(diskPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	fs, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	info, err := collect(fs, opts)
	if err != nil {
		return err
	}
	info.Path = diskPath
	if stat != nil {
		info.Modified = stat.ModTime()
	}

	if opts.JSON {
		return outputJSON(w, info)
	}
	return outputText(w, info, opts)
}

func collect(fs *diskimg.FileSystem, opts *InfoOptions) (*DiskInfo, error) {
	usage, err := fs.Usage()
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	info := &DiskInfo{
		VolumeID: fs.VolumeID().String(),
		Usage:    usage,
	}

	if opts.Verbose {
		if info.Blocks, err = fs.BlockMap(); err != nil {
			return nil, fmt.Errorf("failed to map blocks: %w", err)
		}
	}

	if opts.Validate {
		for _, problem := range fs.Validate() {
			info.Validation = append(info.Validation, problem.Error())
		}
	}
	return info, nil
}

// outputJSON writes disk information in JSON format
func outputJSON(w io.Writer, info *DiskInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

// outputText writes disk information in human-readable format
func outputText(w io.Writer, info *DiskInfo, opts *InfoOptions) error {
	if opts.Quiet && len(info.Validation) == 0 {
		return nil
	}

	u := info.Usage
	fmt.Fprintf(w, "Disk Image: %s\n\n", info.Path)
	fmt.Fprintf(w, "Volume:     %s\n", info.VolumeID)
	fmt.Fprintf(w, "Files:      %d (%d free descriptors)\n", u.Files, u.FreeDescriptors)
	fmt.Fprintf(w, "Bytes:      %d\n", u.Bytes)
	fmt.Fprintf(w, "Blocks:     %d total, %d reserved, %d used, %d free\n",
		u.TotalBlocks, u.ReservedBlocks, u.UsedBlocks, u.FreeBlocks)

	if !info.Modified.IsZero() {
		fmt.Fprintf(w, "Modified:   %s\n", info.Modified.Format(time.RFC1123))
	}

	if opts.Verbose {
		fmt.Fprintf(w, "\nBlock Map:\n")
		for _, b := range info.Blocks {
			owner := ""
			if b.Name != "" {
				owner = fmt.Sprintf(" %s (descriptor %d)", b.Name, b.Descriptor)
			}
			fmt.Fprintf(w, "%3d  %-11s%s\n", b.Index, b.Kind, owner)
		}
	}

	if len(info.Validation) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range info.Validation {
			fmt.Fprintf(w, "- %s\n", warning)
		}
	}
	return nil
}
