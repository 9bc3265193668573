package interfaces

import "io"

// DeviceReader is sequential, seekable access to a raw block device or image
// file. Read and Seek failures surface the underlying I/O error unchanged.
type DeviceReader interface {
	// Read returns exactly n bytes from the current position
	Read(n int) ([]byte, error)

	// Seek repositions the device offset; whence is io.SeekStart,
	// io.SeekCurrent or io.SeekEnd
	Seek(offset int64, whence int) (int64, error)

	// Path returns the path the device was opened from
	Path() string

	io.Closer
}
