package device

import (
	"fmt"
	"io"
	"os"

	"github.com/deploymenttheory/go-zfs/internal/interfaces"
)

// fileDevice implements the DeviceReader interface over a raw device node or
// a plain image file.
type fileDevice struct {
	file *os.File
	path string
}

var _ interfaces.DeviceReader = (*fileDevice)(nil)

// Open opens a block device or image file read-only.
func Open(path string) (interfaces.DeviceReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", path, err)
	}
	return &fileDevice{file: file, path: path}, nil
}

// Read returns exactly n bytes from the current position. A short read is an
// error: label decoding needs byte-exact regions, never zero-padded ones.
func (d *fileDevice) Read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.file, buf); err != nil {
		return nil, fmt.Errorf("failed to read %d bytes from %s: %w", n, d.path, err)
	}
	return buf, nil
}

// Seek repositions the device offset.
func (d *fileDevice) Seek(offset int64, whence int) (int64, error) {
	pos, err := d.file.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("failed to seek on %s: %w", d.path, err)
	}
	return pos, nil
}

// Path returns the path the device was opened from.
func (d *fileDevice) Path() string {
	return d.path
}

// Close releases the underlying file handle.
func (d *fileDevice) Close() error {
	return d.file.Close()
}
