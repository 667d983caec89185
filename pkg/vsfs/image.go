package vsfs

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Image is an open VSFS image addressed in fixed-size blocks. All reads and
// writes are positional, so interleaved reads never disturb each other; the
// repair engine is the only writer.
type Image struct {
	file      *os.File
	blockSize uint32
}

// OpenImage opens the image at path for read and write.
func OpenImage(path string, blockSize uint32) (*Image, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %v", path, err)
	}
	return &Image{file: file, blockSize: blockSize}, nil
}

// Close closes the backing file.
func (img *Image) Close() error {
	return img.file.Close()
}

// Pread fills buf from the given byte offset. A short read is an error:
// every structure the checker loads has a fixed size.
func (img *Image) Pread(buf []byte, off uint64) error {
	read := 0
	for read < len(buf) {
		n, err := unix.Pread(int(img.file.Fd()), buf[read:], int64(off)+int64(read))
		if n > 0 {
			read += n
			continue
		}
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read at offset %d: %v", off, err)
		}
		return fmt.Errorf("short read at offset %d: got %d of %d bytes", off, read, len(buf))
	}
	return nil
}

// Pwrite writes buf at the given byte offset, failing on short writes.
func (img *Image) Pwrite(buf []byte, off uint64) error {
	written := 0
	for written < len(buf) {
		n, err := unix.Pwrite(int(img.file.Fd()), buf[written:], int64(off)+int64(written))
		if n > 0 {
			written += n
			continue
		}
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to write at offset %d: %v", off, err)
		}
		return fmt.Errorf("short write at offset %d: wrote %d of %d bytes", off, written, len(buf))
	}
	return nil
}

// ReadBlock reads block n in full.
func (img *Image) ReadBlock(n uint32) ([]byte, error) {
	Debugf("reading block %d", n)
	buf := make([]byte, img.blockSize)
	if err := img.Pread(buf, uint64(n)*uint64(img.blockSize)); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBlock writes block n in full.
func (img *Image) WriteBlock(n uint32, buf []byte) error {
	Debugf("writing block %d", n)
	if uint32(len(buf)) != img.blockSize {
		return fmt.Errorf("block buffer is %d bytes, want %d", len(buf), img.blockSize)
	}
	return img.Pwrite(buf, uint64(n)*uint64(img.blockSize))
}
