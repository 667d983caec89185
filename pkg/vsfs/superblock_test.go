package vsfs

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// rawSuperblock lays out a block 0 by hand, at the documented byte offsets:
// 16-bit magic, two alignment bytes, then the eight 32-bit geometry fields.
func rawSuperblock(g Geometry) []byte {
	block := make([]byte, g.BlockSize)
	binary.LittleEndian.PutUint16(block[0:], Magic)
	binary.LittleEndian.PutUint32(block[4:], g.BlockSize)
	binary.LittleEndian.PutUint32(block[8:], g.TotalBlocks)
	binary.LittleEndian.PutUint32(block[12:], g.InodeBitmapBlock)
	binary.LittleEndian.PutUint32(block[16:], g.DataBitmapBlock)
	binary.LittleEndian.PutUint32(block[20:], g.InodeTableStart)
	binary.LittleEndian.PutUint32(block[24:], g.DataBlockStart)
	binary.LittleEndian.PutUint32(block[28:], g.InodeSize)
	binary.LittleEndian.PutUint32(block[32:], g.InodeCount)
	return block
}

func TestDecodeSuperblockOffsets(t *testing.T) {
	g := DefaultGeometry()
	sb, err := DecodeSuperblock(rawSuperblock(g))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if sb.Magic != Magic {
		t.Errorf("magic: got 0x%x, want 0x%x", sb.Magic, Magic)
	}
	if sb.BlockSize != g.BlockSize {
		t.Errorf("block size: got %d, want %d", sb.BlockSize, g.BlockSize)
	}
	if sb.TotalBlocks != g.TotalBlocks {
		t.Errorf("total blocks: got %d, want %d", sb.TotalBlocks, g.TotalBlocks)
	}
	if sb.InodeBitmapBlock != g.InodeBitmapBlock {
		t.Errorf("inode bitmap block: got %d, want %d", sb.InodeBitmapBlock, g.InodeBitmapBlock)
	}
	if sb.DataBitmapBlock != g.DataBitmapBlock {
		t.Errorf("data bitmap block: got %d, want %d", sb.DataBitmapBlock, g.DataBitmapBlock)
	}
	if sb.InodeTableStart != g.InodeTableStart {
		t.Errorf("inode table start: got %d, want %d", sb.InodeTableStart, g.InodeTableStart)
	}
	if sb.DataBlockStart != g.DataBlockStart {
		t.Errorf("data block start: got %d, want %d", sb.DataBlockStart, g.DataBlockStart)
	}
	if sb.InodeSize != g.InodeSize {
		t.Errorf("inode size: got %d, want %d", sb.InodeSize, g.InodeSize)
	}
	if sb.InodeCount != g.InodeCount {
		t.Errorf("inode count: got %d, want %d", sb.InodeCount, g.InodeCount)
	}
}

func TestSuperblockRoundTripPreservesReserved(t *testing.T) {
	g := DefaultGeometry()
	block := rawSuperblock(g)
	// Noise deep in the reserved area must survive a decode/encode cycle.
	block[100] = 0xAB
	block[4095] = 0x5A

	sb, err := DecodeSuperblock(block)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	encoded, err := sb.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if len(encoded) != int(g.BlockSize) {
		t.Fatalf("encoded superblock is %d bytes, want %d", len(encoded), g.BlockSize)
	}
	if !bytes.Equal(encoded, block) {
		t.Errorf("superblock round trip is not byte-identical")
	}
}
