// Package backup snapshots a file system image before the repair engine
// mutates it, so the pre-repair state stays recoverable.
package backup

import (
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4"
)

// Snapshot writes an lz4-compressed copy of the image at src to dst.
func Snapshot(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %v", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create backup %s: %v", dst, err)
	}

	zw := lz4.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to compress image: %v", err)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("failed to flush backup: %v", err)
	}
	return out.Close()
}

// Restore decompresses a snapshot taken by Snapshot back into a raw image
// at dst, overwriting whatever is there.
func Restore(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open backup %s: %v", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create image %s: %v", dst, err)
	}

	if _, err := io.Copy(out, lz4.NewReader(in)); err != nil {
		out.Close()
		return fmt.Errorf("failed to decompress backup: %v", err)
	}
	return out.Close()
}
