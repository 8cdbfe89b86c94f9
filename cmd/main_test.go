package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out.String()
}

func TestCommandLifecycle(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "disk.img")
	host := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(host, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	run(t, "", "create", "-q", image)
	run(t, "", "add", "-q", "-n", "hi", image, host)

	if got := run(t, "", "list", "--sort", "name", image); strings.TrimSpace(got) != "hi" {
		t.Errorf("list: got %q", got)
	}

	got := run(t, "", "info", "--json", image)
	if !strings.Contains(got, `"files": 1`) || strings.Contains(got, "validation_issues") {
		t.Errorf("info: %s", got)
	}

	run(t, "", "extract", "-q", "-d", filepath.Join(dir, "out"), image, "hi")
	data, err := os.ReadFile(filepath.Join(dir, "out", "hi"))
	if err != nil || string(data) != "hello" {
		t.Errorf("extract: %q, %v", data, err)
	}

	run(t, "", "report", "-q", image, filepath.Join(dir, "map.png"))
	if _, err := os.Stat(filepath.Join(dir, "map.png")); err != nil {
		t.Errorf("report: %v", err)
	}

	run(t, "y\n", "delete", "-q", image, "hi")
	if got := run(t, "", "list", image); strings.TrimSpace(got) != "" {
		t.Errorf("list after delete: got %q", got)
	}
}

func TestShellCommand(t *testing.T) {
	got := run(t, "cr abc\nop abc\nwr 1 z 3\nsk 1 0\nrd 1 3\n", "shell")
	want := "abc created\nabc opened 1\n3 bytes written\nposition is 0\nzzz\n"
	if got != want {
		t.Errorf("shell: got %q, want %q", got, want)
	}
}
