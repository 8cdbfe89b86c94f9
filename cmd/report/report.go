// file: cmd/report/report.go

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
	blockmap "github.com/ha1tch/ldiskfs/pkg/report"
)

// ReportOptions configures the block map report
type ReportOptions struct {
	Title    string // Image title, the disk file name when empty
	FontPath string // TrueType face, built-in face when empty
	Quiet    bool   // Suppress non-error output
}

// DefaultReportOptions returns default options for Report
func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		Title:    "",
		FontPath: "",
		Quiet:    false,
	}
}

// Report renders the block map of a disk image to a PNG file
func Report(diskPath string, outPath string, opts *ReportOptions) error {
	if opts == nil {
		opts = DefaultReportOptions()
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	fs, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	blocks, err := fs.BlockMap()
	if err != nil {
		return fmt.Errorf("failed to map blocks: %w", err)
	}

	renderOpts := blockmap.DefaultOptions()
	renderOpts.Title = opts.Title
	if renderOpts.Title == "" {
		renderOpts.Title = "BLOCK MAP - " + filepath.Base(diskPath)
	}
	renderOpts.FontPath = opts.FontPath

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := blockmap.SavePNG(outPath, blocks, renderOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Wrote block map of %s to %s\n", diskPath, outPath)
	}
	return nil
}
