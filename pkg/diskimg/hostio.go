// file: pkg/diskimg/hostio.go

package diskimg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImportOptions configures file import behavior
type ImportOptions struct {
	Overwrite bool // Replace an existing file of the same name
}

// ImportFile copies a host file into the disk under name
func (fs *FileSystem) ImportFile(hostPath string, name string, opts *ImportOptions) error {
	info, err := os.Stat(hostPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", hostPath)
	}

	// Reject before touching the disk
	if info.Size() > MaxFileSize {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", ErrFileTooLarge, hostPath, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(hostPath)
	if err != nil {
		return err
	}

	overwrite := opts != nil && opts.Overwrite
	return fs.WriteFile(name, data, overwrite)
}

// ImportRaw imports a host file under a name derived from its base name and
// returns that name
func (fs *FileSystem) ImportRaw(hostPath string) (string, error) {
	base := filepath.Base(hostPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if len(base) > MaxNameLength {
		base = base[:MaxNameLength]
	}
	name, err := normalizeFilename(base)
	if err != nil {
		return "", err
	}
	return name, fs.ImportFile(hostPath, name, nil)
}

// ExportFile copies a file from the disk to the host filesystem
func (fs *FileSystem) ExportFile(name, hostPath string) error {
	data, err := fs.ReadFile(name)
	if err != nil {
		return err
	}
	return os.WriteFile(hostPath, data, 0644)
}

// WriteFile creates name with the given contents. An existing file is
// replaced only when overwrite is set.
func (fs *FileSystem) WriteFile(name string, data []byte, overwrite bool) error {
	if len(data) > MaxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(data), MaxFileSize)
	}

	err := fs.Create(name)
	if errors.Is(err, ErrFileExists) && overwrite {
		if err = fs.checkReplace(name, len(data)); err != nil {
			return err
		}
		if err = fs.Destroy(name); err != nil {
			return err
		}
		err = fs.Create(name)
	}
	if err != nil {
		return err
	}

	handle, err := fs.Open(name)
	if err != nil {
		return err
	}

	n, err := fs.Write(handle, data, len(data))
	if err == nil && n < len(data) {
		err = fmt.Errorf("%w: wrote %d of %d bytes", ErrDiskFull, n, len(data))
	}
	if err != nil {
		// Don't leave a truncated copy behind
		return errors.Join(err, fs.Destroy(name))
	}
	return fs.Close(handle)
}

// checkReplace fails with ErrDiskFull when size bytes would not fit after
// name's blocks are released. The directory slot is reused.
func (fs *FileSystem) checkReplace(name string, size int) error {
	info, err := fs.Stat(name)
	if err != nil {
		return err
	}
	needed := (size + BlockSize - 1) / BlockSize
	available := fs.table.FreeBlockCount() + len(info.Blocks)
	if needed > available {
		return fmt.Errorf("%w: %s needs %d blocks, %d available", ErrDiskFull, name, needed, available)
	}
	return nil
}

// ReadFile returns the whole contents of name. When the file is already
// open its handle stays open and keeps its cursor.
func (fs *FileSystem) ReadFile(name string) ([]byte, error) {
	handle, fresh, err := fs.open(name)
	if err != nil {
		return nil, err
	}

	of := &fs.oft[handle]
	cursor := of.cursor

	data, err := fs.readAll(of)
	if fresh {
		if cerr := fs.closeEntry(handle); err == nil {
			err = cerr
		}
	} else if serr := fs.seek(of, cursor); err == nil {
		err = serr
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (fs *FileSystem) readAll(of *openFile) ([]byte, error) {
	if err := fs.seek(of, 0); err != nil {
		return nil, err
	}
	return fs.read(of, MaxFileSize)
}
