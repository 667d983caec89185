package check

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

// imageBuilder assembles a VSFS image in memory. A fresh builder produces a
// fully consistent image; tests then break specific invariants before
// writing it out.
type imageBuilder struct {
	geo    vsfs.Geometry
	sb     *vsfs.Superblock
	ibmp   vsfs.Bitmap
	dbmp   vsfs.Bitmap
	inodes []*vsfs.Inode
	blocks map[uint32][]byte // raw data-region blocks, e.g. indirect contents
}

func newImageBuilder() *imageBuilder {
	geo := vsfs.DefaultGeometry()
	inodes := make([]*vsfs.Inode, geo.InodeCount)
	for i := range inodes {
		inodes[i] = &vsfs.Inode{}
	}
	return &imageBuilder{
		geo: geo,
		sb: &vsfs.Superblock{
			Magic:            vsfs.Magic,
			BlockSize:        geo.BlockSize,
			TotalBlocks:      geo.TotalBlocks,
			InodeBitmapBlock: geo.InodeBitmapBlock,
			DataBitmapBlock:  geo.DataBitmapBlock,
			InodeTableStart:  geo.InodeTableStart,
			DataBlockStart:   geo.DataBlockStart,
			InodeSize:        geo.InodeSize,
			InodeCount:       geo.InodeCount,
		},
		ibmp:   make(vsfs.Bitmap, geo.BlockSize),
		dbmp:   make(vsfs.Bitmap, geo.BlockSize),
		inodes: inodes,
		blocks: make(map[uint32][]byte),
	}
}

func (b *imageBuilder) markData(block uint32) {
	if b.geo.InDataRegion(block) {
		b.dbmp.Set(block - b.geo.DataBlockStart)
	}
}

// addFile marks inode idx live with the given direct block pointers and
// keeps both bitmaps consistent with it.
func (b *imageBuilder) addFile(idx int, direct ...uint32) *vsfs.Inode {
	ino := b.inodes[idx]
	ino.Mode = 0644
	ino.Nlink = 1
	ino.Blocks = uint32(len(direct))
	ino.Size = uint32(len(direct)) * b.geo.BlockSize
	copy(ino.Direct[:], direct)
	b.ibmp.Set(uint32(idx))
	for _, blk := range direct {
		b.markData(blk)
	}
	return ino
}

// setIndirect attaches a single-indirect block holding the given entries to
// inode idx and keeps the data bitmap consistent.
func (b *imageBuilder) setIndirect(idx int, indirect uint32, entries ...uint32) {
	b.inodes[idx].Indirect = indirect
	b.markData(indirect)
	raw := make([]byte, b.geo.BlockSize)
	for i, e := range entries {
		binary.LittleEndian.PutUint32(raw[i*4:], e)
		b.markData(e)
	}
	b.blocks[indirect] = raw
}

// write lays the image out in a temp file and returns its path.
func (b *imageBuilder) write(t *testing.T) string {
	t.Helper()
	buf := make([]byte, b.geo.TotalBlocks*b.geo.BlockSize)

	sbBytes, err := b.sb.Encode()
	if err != nil {
		t.Fatalf("failed to encode superblock: %v", err)
	}
	copy(buf, sbBytes)
	copy(buf[b.geo.InodeBitmapBlock*b.geo.BlockSize:], b.ibmp)
	copy(buf[b.geo.DataBitmapBlock*b.geo.BlockSize:], b.dbmp)

	tableOff := b.geo.InodeTableStart * b.geo.BlockSize
	for i, ino := range b.inodes {
		rec, err := ino.Encode()
		if err != nil {
			t.Fatalf("failed to encode inode %d: %v", i, err)
		}
		copy(buf[tableOff+uint32(i)*b.geo.InodeSize:], rec)
	}
	for blk, raw := range b.blocks {
		copy(buf[blk*b.geo.BlockSize:], raw)
	}

	path := filepath.Join(t.TempDir(), "test.img")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

func readImage(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read image: %v", err)
	}
	return data
}

// runCheck drives a full checker run over the image, discarding the report
// text; tests assert on the Result and the on-disk bytes.
func runCheck(t *testing.T, path string, mutate func(*vsfs.Config)) *Result {
	t.Helper()
	cfg := vsfs.DefaultConfig()
	cfg.ImagePath = path
	if mutate != nil {
		mutate(cfg)
	}
	res, err := Run(cfg, io.Discard)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res
}

// loadContext opens the image and loads a Context for validator-level
// tests. The image is closed automatically when the test ends.
func loadContext(t *testing.T, path string) *Context {
	t.Helper()
	geo := vsfs.DefaultGeometry()
	img, err := vsfs.OpenImage(path, geo.BlockSize)
	if err != nil {
		t.Fatalf("failed to open image: %v", err)
	}
	t.Cleanup(func() { img.Close() })
	ctx, err := Load(img, geo)
	if err != nil {
		t.Fatalf("failed to load image: %v", err)
	}
	return ctx
}
