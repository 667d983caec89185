package vsfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Superblock is the in-memory VSFS superblock.
type Superblock struct {
	Magic            uint16 // magic number 0xD34D
	BlockSize        uint32 // bytes per block
	TotalBlocks      uint32 // blocks in the image
	InodeBitmapBlock uint32 // inode bitmap block number
	DataBitmapBlock  uint32 // data bitmap block number
	InodeTableStart  uint32 // first inode table block
	DataBlockStart   uint32 // first data region block
	InodeSize        uint32 // bytes per inode record
	InodeCount       uint32 // inode table slots

	// Reserved fills the rest of block 0 and is carried through untouched
	// so a load/persist cycle reproduces the block byte for byte.
	Reserved [4060]byte
}

// SuperblockOnDisk is the on-disk representation with explicit
// little-endian encoding. The two bytes after the magic keep the 32-bit
// fields naturally aligned, matching images produced by the original
// formatter.
type SuperblockOnDisk struct {
	Magic            [2]byte
	Pad              [2]byte
	BlockSize        [4]byte
	TotalBlocks      [4]byte
	InodeBitmapBlock [4]byte
	DataBitmapBlock  [4]byte
	InodeTableStart  [4]byte
	DataBlockStart   [4]byte
	InodeSize        [4]byte
	InodeCount       [4]byte
	Reserved         [4060]byte
}

// SuperblockFromDisk converts the on-disk representation to an in-memory
// Superblock
func SuperblockFromDisk(diskSb *SuperblockOnDisk) *Superblock {
	sb := &Superblock{}

	sb.Magic = binary.LittleEndian.Uint16(diskSb.Magic[:])
	sb.BlockSize = binary.LittleEndian.Uint32(diskSb.BlockSize[:])
	sb.TotalBlocks = binary.LittleEndian.Uint32(diskSb.TotalBlocks[:])
	sb.InodeBitmapBlock = binary.LittleEndian.Uint32(diskSb.InodeBitmapBlock[:])
	sb.DataBitmapBlock = binary.LittleEndian.Uint32(diskSb.DataBitmapBlock[:])
	sb.InodeTableStart = binary.LittleEndian.Uint32(diskSb.InodeTableStart[:])
	sb.DataBlockStart = binary.LittleEndian.Uint32(diskSb.DataBlockStart[:])
	sb.InodeSize = binary.LittleEndian.Uint32(diskSb.InodeSize[:])
	sb.InodeCount = binary.LittleEndian.Uint32(diskSb.InodeCount[:])
	copy(sb.Reserved[:], diskSb.Reserved[:])

	return sb
}

// ToDisk converts the in-memory Superblock to its on-disk representation
func (sb *Superblock) ToDisk() *SuperblockOnDisk {
	diskSb := &SuperblockOnDisk{}

	binary.LittleEndian.PutUint16(diskSb.Magic[:], sb.Magic)
	binary.LittleEndian.PutUint32(diskSb.BlockSize[:], sb.BlockSize)
	binary.LittleEndian.PutUint32(diskSb.TotalBlocks[:], sb.TotalBlocks)
	binary.LittleEndian.PutUint32(diskSb.InodeBitmapBlock[:], sb.InodeBitmapBlock)
	binary.LittleEndian.PutUint32(diskSb.DataBitmapBlock[:], sb.DataBitmapBlock)
	binary.LittleEndian.PutUint32(diskSb.InodeTableStart[:], sb.InodeTableStart)
	binary.LittleEndian.PutUint32(diskSb.DataBlockStart[:], sb.DataBlockStart)
	binary.LittleEndian.PutUint32(diskSb.InodeSize[:], sb.InodeSize)
	binary.LittleEndian.PutUint32(diskSb.InodeCount[:], sb.InodeCount)
	copy(diskSb.Reserved[:], sb.Reserved[:])

	return diskSb
}

// DecodeSuperblock parses a superblock from the raw contents of block 0.
func DecodeSuperblock(block []byte) (*Superblock, error) {
	diskSb := &SuperblockOnDisk{}
	if err := binary.Read(bytes.NewReader(block), binary.LittleEndian, diskSb); err != nil {
		return nil, fmt.Errorf("failed to decode superblock: %v", err)
	}
	return SuperblockFromDisk(diskSb), nil
}

// Encode serializes the superblock into a full block buffer.
func (sb *Superblock) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, sb.ToDisk()); err != nil {
		return nil, fmt.Errorf("failed to encode superblock: %v", err)
	}
	return buf.Bytes(), nil
}
