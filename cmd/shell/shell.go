// file: cmd/shell/shell.go

package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// errorLine is printed for every failed command
const errorLine = "error"

// ShellOptions configures a shell session
type ShellOptions struct {
	Transcript string                        // Also write every response to this file
	Echo       bool                          // Print each command before its response
	Logf       func(format string, v ...any) // Failure details, nil to discard
}

// DefaultShellOptions returns default options for Run
func DefaultShellOptions() *ShellOptions {
	return &ShellOptions{
		Transcript: "",
		Echo:       false,
	}
}

// Shell interprets the line protocol against one disk
type Shell struct {
	fs   *diskimg.FileSystem
	logf func(format string, v ...any)
}

// New returns a shell over fs, or over a fresh disk when fs is nil
func New(fs *diskimg.FileSystem) *Shell {
	if fs == nil {
		fs = diskimg.NewFileSystem()
	}
	return &Shell{fs: fs, logf: func(string, ...any) {}}
}

// FileSystem returns the disk the shell currently operates on
func (s *Shell) FileSystem() *diskimg.FileSystem {
	return s.fs
}

// Run executes every line of in and writes one response line per command
func Run(in io.Reader, out io.Writer, opts *ShellOptions) error {
	if opts == nil {
		opts = DefaultShellOptions()
	}

	if opts.Transcript != "" {
		f, err := os.Create(opts.Transcript)
		if err != nil {
			return fmt.Errorf("failed to create transcript: %w", err)
		}
		defer f.Close()
		out = io.MultiWriter(out, f)
	}

	s := New(nil)
	if opts.Logf != nil {
		s.logf = opts.Logf
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if opts.Echo && strings.TrimSpace(line) != "" {
			fmt.Fprintf(out, "> %s\n", line)
		}
		if _, err := fmt.Fprintln(out, s.Execute(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Execute runs one command line and returns its response. Unknown commands
// and blank lines produce an empty response.
func (s *Shell) Execute(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	args := fields[1:]

	var resp string
	var err error
	switch fields[0] {
	case "cr":
		resp, err = s.create(args)
	case "de":
		resp, err = s.destroy(args)
	case "op":
		resp, err = s.open(args)
	case "cl":
		resp, err = s.close(args)
	case "rd":
		resp, err = s.read(args)
	case "wr":
		resp, err = s.write(args)
	case "sk":
		resp, err = s.seek(args)
	case "dr":
		resp, err = s.directory()
	case "in":
		resp, err = s.initialize(args)
	case "sv":
		resp, err = s.save(args)
	default:
		return ""
	}

	if err != nil {
		s.logf("%s: %v", strings.TrimSpace(line), err)
		return errorLine
	}
	return resp
}

// arg returns args[i], or an error naming the missing parameter
func arg(args []string, i int, name string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing %s", name)
	}
	return args[i], nil
}

func intArg(args []string, i int, name string) (int, error) {
	s, err := arg(args, i, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return n, nil
}

func (s *Shell) create(args []string) (string, error) {
	name, err := arg(args, 0, "name")
	if err != nil {
		return "", err
	}
	if err := s.fs.Create(name); err != nil {
		return "", err
	}
	return name + " created", nil
}

func (s *Shell) destroy(args []string) (string, error) {
	name, err := arg(args, 0, "name")
	if err != nil {
		return "", err
	}
	if err := s.fs.Destroy(name); err != nil {
		return "", err
	}
	return name + " destroyed", nil
}

func (s *Shell) open(args []string) (string, error) {
	name, err := arg(args, 0, "name")
	if err != nil {
		return "", err
	}
	handle, err := s.fs.Open(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s opened %d", name, handle), nil
}

func (s *Shell) close(args []string) (string, error) {
	handle, err := intArg(args, 0, "handle")
	if err != nil {
		return "", err
	}
	if err := s.fs.Close(handle); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d closed", handle), nil
}

func (s *Shell) read(args []string) (string, error) {
	handle, err := intArg(args, 0, "handle")
	if err != nil {
		return "", err
	}
	count, err := intArg(args, 1, "count")
	if err != nil {
		return "", err
	}
	if count < 0 {
		return "", fmt.Errorf("negative count %d", count)
	}
	data, err := s.fs.Read(handle, count)
	if err != nil {
		return "", err
	}
	// Padding and control bytes at either end are not printed
	return strings.TrimFunc(string(data), func(r rune) bool { return r <= ' ' }), nil
}

func (s *Shell) write(args []string) (string, error) {
	handle, err := intArg(args, 0, "handle")
	if err != nil {
		return "", err
	}
	char, err := arg(args, 1, "char")
	if err != nil {
		return "", err
	}
	count, err := intArg(args, 2, "count")
	if err != nil {
		return "", err
	}
	if count < 0 {
		return "", fmt.Errorf("negative count %d", count)
	}

	// Nothing beyond MaxFileSize can be written
	data := []byte(strings.Repeat(char[:1], min(count, diskimg.MaxFileSize)))
	n, err := s.fs.Write(handle, data, len(data))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d bytes written", n), nil
}

func (s *Shell) seek(args []string) (string, error) {
	handle, err := intArg(args, 0, "handle")
	if err != nil {
		return "", err
	}
	pos, err := intArg(args, 1, "position")
	if err != nil {
		return "", err
	}
	pos, err = s.fs.Seek(handle, pos)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("position is %d", pos), nil
}

func (s *Shell) directory() (string, error) {
	names, err := s.fs.ListDirectory()
	if err != nil {
		return "", err
	}
	return strings.Join(names, " "), nil
}

func (s *Shell) initialize(args []string) (string, error) {
	path, err := arg(args, 0, "path")
	if err != nil {
		return "", err
	}

	// Load into a separate value so a failed restore keeps the current disk
	next := &diskimg.FileSystem{}
	status, err := next.Initialize(path)
	if err != nil {
		return "", err
	}
	s.fs = next
	return "disk " + status.String(), nil
}

func (s *Shell) save(args []string) (string, error) {
	path, err := arg(args, 0, "path")
	if err != nil {
		return "", err
	}
	if err := s.fs.SaveToFile(path); err != nil {
		return "", err
	}
	return "disk saved", nil
}
