package device

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempImage(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.img")
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func TestOpenReadSeek(t *testing.T) {
	path := writeTempImage(t, 4096)

	dev, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer dev.Close()

	if dev.Path() != path {
		t.Errorf("Path() = %q, want %q", dev.Path(), path)
	}

	head, err := dev.Read(16)
	if err != nil {
		t.Fatalf("Read(16) failed: %v", err)
	}
	for i, b := range head {
		if b != byte(i) {
			t.Fatalf("head[%d] = %d, want %d", i, b, i)
		}
	}

	// Seek relative to the end, the way labels 2 and 3 are located.
	if _, err := dev.Seek(-16, io.SeekEnd); err != nil {
		t.Fatalf("Seek(-16, SeekEnd) failed: %v", err)
	}
	tail, err := dev.Read(16)
	if err != nil {
		t.Fatalf("Read(16) at tail failed: %v", err)
	}
	tailOffset := 4096 - 16
	if tail[0] != byte(tailOffset) {
		t.Errorf("tail[0] = %d, want %d", tail[0], byte(tailOffset))
	}
}

func TestRead_ShortInput(t *testing.T) {
	dev, err := Open(writeTempImage(t, 100))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer dev.Close()

	if _, err := dev.Read(200); err == nil {
		t.Error("Read(200) over a 100-byte image should fail, not zero-pad")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Open() of a missing path should fail")
	}
}
