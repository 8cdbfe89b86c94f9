// file: pkg/diskimg/snapshot_test.go

package diskimg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/ldiskfs/pkg/disk"
)

func populate(t *testing.T, fs *FileSystem) {
	t.Helper()
	handle := openNewFile(t, fs, "abc")
	n, err := fs.Write(handle, bytes.Repeat([]byte{'q'}, 100), 100)
	require.NoError(t, err)
	require.Equal(t, 100, n)
	require.NoError(t, fs.Create("xyz"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := NewFileSystem()
	populate(t, fs)

	var buf bytes.Buffer
	require.NoError(t, fs.Save(&buf))
	require.Equal(t, SnapshotHeaderSize+disk.ImageSize, buf.Len())

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, fs.VolumeID(), loaded.VolumeID())

	names, err := loaded.ListDirectory()
	require.NoError(t, err)
	require.Equal(t, []string{"abc", "xyz"}, names)

	data, err := loaded.ReadFile("abc")
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{'q'}, 100), data)

	require.NoError(t, loaded.DiskCheck())
}

func TestSaveClosesHandles(t *testing.T) {
	fs := NewFileSystem()
	populate(t, fs)
	require.Equal(t, []int{1}, fs.OpenHandles())

	require.NoError(t, fs.Save(&bytes.Buffer{}))
	require.Empty(t, fs.OpenHandles())

	_, err := fs.Read(1, 1)
	require.ErrorIs(t, err, ErrInvalidHandle)

	// The directory stays usable
	handle, err := fs.Open("abc")
	require.NoError(t, err)
	require.Equal(t, 1, handle)
}

func TestRawImage(t *testing.T) {
	fs := NewFileSystem()
	populate(t, fs)

	var buf bytes.Buffer
	require.NoError(t, fs.WriteRawImage(&buf))
	require.Equal(t, disk.ImageSize, buf.Len())

	raw := buf.Bytes()
	require.Equal(t, byte(0xFF), raw[0], "reserved bits of the bitmap")
	// Directory slot 0 in block 7
	dir := raw[DirectoryBlock*BlockSize:]
	require.Equal(t, []byte{'a', 'b', 'c', 0, 0, 0, 0, 1}, dir[:SlotSize])

	loaded, err := Load(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, loaded.VolumeID())

	info, err := loaded.Stat("abc")
	require.NoError(t, err)
	require.Equal(t, 100, info.Size)
}

func TestLoadCorrupted(t *testing.T) {
	fs := NewFileSystem()
	populate(t, fs)

	var buf bytes.Buffer
	require.NoError(t, fs.Save(&buf))
	data := buf.Bytes()

	t.Run("checksum", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0xFF
		_, err := Load(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Load(bytes.NewReader(data[:len(data)-10]))
		require.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("geometry", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[7] = 32 // block size field
		_, err := Load(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("no directory", func(t *testing.T) {
		raw := make([]byte, disk.ImageSize)
		_, err := Load(bytes.NewReader(raw))
		require.ErrorIs(t, err, ErrPersistence)
	})
}

func TestInitialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	fs := &FileSystem{}
	status, err := fs.Initialize(path)
	require.NoError(t, err)
	require.Equal(t, StatusInitialized, status)
	require.Equal(t, "initialized", status.String())

	populate(t, fs)
	require.NoError(t, fs.SaveToFile(path))

	restored := NewFileSystem()
	status, err = restored.Initialize(path)
	require.NoError(t, err)
	require.Equal(t, StatusRestored, status)
	require.Equal(t, fs.VolumeID(), restored.VolumeID())

	names, err := restored.ListDirectory()
	require.NoError(t, err)
	require.Equal(t, []string{"abc", "xyz"}, names)
}

func TestInitializeUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.img")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0644))

	_, err := NewFileSystem().Initialize(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrPersistence))
}

func TestSnapshotHeaderLayout(t *testing.T) {
	payload := make([]byte, disk.ImageSize)
	id := uuid.New()
	header := NewSnapshotHeader(id, payload)

	data := header.toBytes()
	require.Len(t, data, SnapshotHeaderSize)
	require.Equal(t, []byte(SnapshotMagic), data[:4])

	var parsed SnapshotHeader
	require.NoError(t, parsed.FromBytes(data))
	require.Equal(t, *header, parsed)
	require.NoError(t, parsed.Validate(payload))
}
