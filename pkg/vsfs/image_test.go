package vsfs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func tempImage(t *testing.T, blocks int, blockSize uint32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.img")
	if err := os.WriteFile(path, make([]byte, blocks*int(blockSize)), 0644); err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	return path
}

func TestImageBlockRoundTrip(t *testing.T) {
	g := DefaultGeometry()
	img, err := OpenImage(tempImage(t, 4, g.BlockSize), g.BlockSize)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer img.Close()

	want := make([]byte, g.BlockSize)
	for i := range want {
		want[i] = byte(i % 251)
	}
	if err := img.WriteBlock(2, want); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := img.ReadBlock(2)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("block round trip mismatch")
	}

	// Neighboring blocks must stay zero.
	for _, n := range []uint32{0, 1, 3} {
		blk, err := img.ReadBlock(n)
		if err != nil {
			t.Fatalf("read of block %d failed: %v", n, err)
		}
		if !bytes.Equal(blk, make([]byte, g.BlockSize)) {
			t.Errorf("block %d disturbed by write to block 2", n)
		}
	}
}

func TestImageShortReadIsError(t *testing.T) {
	g := DefaultGeometry()
	img, err := OpenImage(tempImage(t, 2, g.BlockSize), g.BlockSize)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer img.Close()

	if _, err := img.ReadBlock(5); err == nil {
		t.Errorf("reading past the end of the image should fail")
	}
}

func TestOpenImageMissingFile(t *testing.T) {
	if _, err := OpenImage(filepath.Join(t.TempDir(), "nope.img"), 4096); err == nil {
		t.Errorf("opening a missing image should fail")
	}
}

func TestImageRejectsPartialBlockWrite(t *testing.T) {
	g := DefaultGeometry()
	img, err := OpenImage(tempImage(t, 2, g.BlockSize), g.BlockSize)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer img.Close()

	if err := img.WriteBlock(0, make([]byte, 100)); err == nil {
		t.Errorf("writing a short buffer as a block should fail")
	}
}
