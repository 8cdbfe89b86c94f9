// file: cmd/list/list.go

package list

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// Format defines the listing output format. It satisfies pflag.Value so it
// can be bound directly to a flag.
type Format string

const (
	FormatShort Format = "short" // Names only, stored order
	FormatLong  Format = "long"  // Size, descriptor and blocks
	FormatJSON  Format = "json"
)

var _ pflag.Value = (*Format)(nil)

func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(s string) error {
	switch Format(strings.ToLower(s)) {
	case FormatShort, FormatLong, FormatJSON:
		*f = Format(strings.ToLower(s))
		return nil
	}
	return fmt.Errorf("unknown format %q (want short, long or json)", s)
}

func (f *Format) Type() string {
	return "format"
}

// ListOptions configures the directory listing
type ListOptions struct {
	Format  Format    // Output format style
	Sort    string    // Sort order: stored, name, size
	Reverse bool      // Reverse sort order
	Pattern string    // Filter by filename pattern
	Quiet   bool      // Suppress non-error output
	Output  io.Writer // Destination, stdout when nil
}

// DefaultListOptions returns default options for List
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		Format:  FormatShort,
		Sort:    "stored",
		Reverse: false,
		Pattern: "*",
		Quiet:   false,
	}
}

// List displays the contents of a disk image
func List(diskPath string, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	fs, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}
	return ListFileSystem(fs, opts)
}

// ListFileSystem writes the listing of an already loaded disk
func ListFileSystem(fs *diskimg.FileSystem, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
	}
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}

	all, err := fs.Files()
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var files []diskimg.FileInfo
	for _, f := range all {
		if matchesPattern(f.Name, opts.Pattern) {
			files = append(files, f)
		}
	}
	sortFiles(files, opts)

	switch opts.Format {
	case FormatJSON:
		return outputJSON(w, files)
	case FormatLong:
		return outputLong(w, files, opts)
	case FormatShort, "":
		return outputShort(w, files)
	default:
		return fmt.Errorf("unknown format specified")
	}
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	matched, err := filepath.Match(pattern, name)
	return err == nil && matched
}

func sortFiles(files []diskimg.FileInfo, opts *ListOptions) {
	var less func(i, j int) bool
	switch strings.ToLower(opts.Sort) {
	case "name":
		less = func(i, j int) bool { return files[i].Name < files[j].Name }
	case "size":
		less = func(i, j int) bool { return files[i].Size < files[j].Size }
	default: // stored order
		less = func(i, j int) bool { return files[i].Offset < files[j].Offset }
	}

	if opts.Reverse {
		sort.SliceStable(files, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(files, less)
}

func outputJSON(w io.Writer, files []diskimg.FileInfo) error {
	if files == nil {
		files = []diskimg.FileInfo{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

// outputShort prints names separated by single spaces, the way the shell's
// dr command does
func outputShort(w io.Writer, files []diskimg.FileInfo) error {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	_, err := fmt.Fprintln(w, strings.Join(names, " "))
	return err
}

func outputLong(w io.Writer, files []diskimg.FileInfo, opts *ListOptions) error {
	if len(files) == 0 {
		if !opts.Quiet {
			fmt.Fprintln(w, "No files found")
		}
		return nil
	}

	fmt.Fprintln(w, "Name  Bytes  Desc  Blocks")
	fmt.Fprintln(w, "----  -----  ----  ------")

	total := 0
	for _, f := range files {
		blocks := make([]string, len(f.Blocks))
		for i, b := range f.Blocks {
			blocks[i] = fmt.Sprint(b)
		}
		fmt.Fprintf(w, "%-4s  %5d  %4d  %s\n", f.Name, f.Size, f.Descriptor, strings.Join(blocks, ","))
		total += f.Size
	}

	fmt.Fprintf(w, "\n%d file(s), %d bytes\n", len(files), total)
	return nil
}
