// file: cmd/shell/shell_test.go

package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunTranscript(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "disk.img")
	missing := filepath.Join(dir, "none.img")

	script := strings.Join([]string{
		"cr abc",
		"op abc",
		"wr 1 x 64",
		"wr 1 y 64",
		"sk 1 0",
		"rd 1 128",
		"cl 1",
		"dr",
		"cr abc",
		"de abc",
		"dr",
		"",
		"cr foo",
		"sv " + saved,
		"de foo",
		"in " + saved,
		"dr",
		"in " + missing,
		"dr",
		"xx 1 2",
		"wr 9 a 1",
		"rd 1",
	}, "\n")

	want := strings.Join([]string{
		"abc created",
		"abc opened 1",
		"64 bytes written",
		"64 bytes written",
		"position is 0",
		strings.Repeat("x", 64) + strings.Repeat("y", 64),
		"1 closed",
		"abc",
		"error",
		"abc destroyed",
		"",
		"",
		"foo created",
		"disk saved",
		"foo destroyed",
		"disk restored",
		"foo",
		"disk initialized",
		"",
		"",
		"error",
		"error",
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := Run(strings.NewReader(script), &out, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.String() != want {
		t.Errorf("Transcript mismatch:\n got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestExecuteSeekAndPartialRead(t *testing.T) {
	s := New(nil)

	steps := []struct {
		line string
		want string
	}{
		{"cr a", "a created"},
		{"op a", "a opened 1"},
		{"wr 1 z 5", "5 bytes written"},
		{"sk 1 2", "position is 2"},
		{"rd 1 10", "zzz"},
		{"sk 1 7", "error"},
		{"sk 1 6", "position is 6"},
		{"wr 1 q 300", "186 bytes written"},
		{"cl 0", "0 closed"},
		{"cl 2", "error"},
		{"op b", "error"},
		{"cr", "error"},
		{"rd 1 x", "error"},
	}

	for _, step := range steps {
		if got := s.Execute(step.line); got != step.want {
			t.Errorf("%q: got %q, want %q", step.line, got, step.want)
		}
	}
}

func TestRunWritesTranscriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	var logged []string
	opts := &ShellOptions{
		Transcript: path,
		Echo:       true,
		Logf: func(format string, v ...any) {
			logged = append(logged, fmt.Sprintf(format, v...))
		},
	}

	var out bytes.Buffer
	if err := Run(strings.NewReader("cr ab\nde zz\n"), &out, opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "> cr ab\nab created\n> de zz\nerror\n"
	if out.String() != want {
		t.Errorf("stdout: got %q, want %q", out.String(), want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("transcript: got %q, want %q", data, want)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "de zz") {
		t.Errorf("logged: %v", logged)
	}
}

func TestExecuteHugeWriteCount(t *testing.T) {
	s := New(nil)

	for _, step := range []struct{ line, want string }{
		{"cr big", "big created"},
		{"op big", "big opened 1"},
		{"wr 1 x 2000000000", "192 bytes written"},
		{"wr 1 x 5", "0 bytes written"},
	} {
		if got := s.Execute(step.line); got != step.want {
			t.Errorf("%q: got %q, want %q", step.line, got, step.want)
		}
	}
}
