package check

import (
	"fmt"

	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

// CheckSuperblock compares every geometry field of the loaded superblock
// against the single supported geometry. Each mismatch is an independent
// finding; the scan never stops at the first one. A deviating value is only
// ever reported, never used to infer a different valid layout.
func (ctx *Context) CheckSuperblock() bool {
	consistent := true
	geo := ctx.Geo
	sb := ctx.Super

	mismatch := func(field string, observed, expected uint32, detail string) {
		ctx.record(Finding{
			Category: CatSuperblock,
			Field:    field,
			Inode:    -1,
			Slot:     -1,
			Observed: observed,
			Expected: expected,
			Detail:   detail,
		})
		consistent = false
	}

	if sb.Magic != vsfs.Magic {
		mismatch("magic", uint32(sb.Magic), uint32(vsfs.Magic),
			fmt.Sprintf("Invalid magic number (0x%x), should be 0x%x", sb.Magic, vsfs.Magic))
	}
	if sb.BlockSize != geo.BlockSize {
		mismatch("block size", sb.BlockSize, geo.BlockSize,
			fmt.Sprintf("Invalid block size (%d), should be %d", sb.BlockSize, geo.BlockSize))
	}
	if sb.TotalBlocks != geo.TotalBlocks {
		mismatch("total blocks", sb.TotalBlocks, geo.TotalBlocks,
			fmt.Sprintf("Invalid total blocks (%d), should be %d", sb.TotalBlocks, geo.TotalBlocks))
	}
	if sb.InodeBitmapBlock != geo.InodeBitmapBlock {
		mismatch("inode bitmap block", sb.InodeBitmapBlock, geo.InodeBitmapBlock,
			fmt.Sprintf("Invalid inode bitmap block (%d), should be %d", sb.InodeBitmapBlock, geo.InodeBitmapBlock))
	}
	if sb.DataBitmapBlock != geo.DataBitmapBlock {
		mismatch("data bitmap block", sb.DataBitmapBlock, geo.DataBitmapBlock,
			fmt.Sprintf("Invalid data bitmap block (%d), should be %d", sb.DataBitmapBlock, geo.DataBitmapBlock))
	}
	if sb.InodeTableStart != geo.InodeTableStart {
		mismatch("inode table start", sb.InodeTableStart, geo.InodeTableStart,
			fmt.Sprintf("Invalid inode table start (%d), should be %d", sb.InodeTableStart, geo.InodeTableStart))
	}
	if sb.DataBlockStart != geo.DataBlockStart {
		mismatch("data block start", sb.DataBlockStart, geo.DataBlockStart,
			fmt.Sprintf("Invalid data block start (%d), should be %d", sb.DataBlockStart, geo.DataBlockStart))
	}
	if sb.InodeSize != geo.InodeSize {
		mismatch("inode size", sb.InodeSize, geo.InodeSize,
			fmt.Sprintf("Invalid inode size (%d), should be %d", sb.InodeSize, geo.InodeSize))
	}
	// A zero inode count is the pre-population default, not corruption.
	if sb.InodeCount != geo.InodeCount && sb.InodeCount != 0 {
		mismatch("inode count", sb.InodeCount, geo.InodeCount,
			fmt.Sprintf("Invalid inode count (%d), should be %d", sb.InodeCount, geo.InodeCount))
	}

	return consistent
}
