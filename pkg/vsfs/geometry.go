package vsfs

// Magic is the VSFS superblock magic number.
const Magic uint16 = 0xD34D

// DirectBlocks is the number of direct block pointers in an inode.
const DirectBlocks = 12

// Geometry describes one recognized VSFS on-disk layout. The checker
// supports exactly one geometry: any superblock deviation from it is a
// finding, never a hint that some other layout might be valid.
type Geometry struct {
	BlockSize        uint32 // bytes per block
	TotalBlocks      uint32 // blocks in the whole image
	InodeBitmapBlock uint32 // block holding the inode bitmap
	DataBitmapBlock  uint32 // block holding the data bitmap
	InodeTableStart  uint32 // first block of the inode table
	DataBlockStart   uint32 // first block of the data region
	InodeSize        uint32 // bytes per inode record
	InodeCount       uint32 // inode table slots
}

// DefaultGeometry returns the single supported VSFS geometry: 64 blocks of
// 4096 bytes, bitmaps in blocks 1 and 2, 80 inodes of 256 bytes in blocks
// 3-7, data region in blocks 8-63.
func DefaultGeometry() Geometry {
	return Geometry{
		BlockSize:        4096,
		TotalBlocks:      64,
		InodeBitmapBlock: 1,
		DataBitmapBlock:  2,
		InodeTableStart:  3,
		DataBlockStart:   8,
		InodeSize:        256,
		InodeCount:       80,
	}
}

// PointersPerBlock is how many 32-bit block numbers fit in one block.
func (g Geometry) PointersPerBlock() uint32 {
	return g.BlockSize / 4
}

// InDataRegion reports whether block n lies inside the data region.
func (g Geometry) InDataRegion(n uint32) bool {
	return n >= g.DataBlockStart && n < g.TotalBlocks
}
