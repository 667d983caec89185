package check

import (
	"fmt"

	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

// Load reads the superblock from block 0 and then the bitmaps and the
// inode table from the block numbers the superblock itself claims. Nothing
// is validated first: a corrupted superblock makes the loader read metadata
// from the wrong place, and the validators then report the damage instead
// of the loader guessing at a better location. Only host I/O failures are
// fatal here.
func Load(img *vsfs.Image, geo vsfs.Geometry) (*Context, error) {
	blk, err := img.ReadBlock(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read superblock: %v", err)
	}
	sb, err := vsfs.DecodeSuperblock(blk)
	if err != nil {
		return nil, err
	}
	vsfs.Debugf("superblock claims: inode bitmap %d, data bitmap %d, inode table %d",
		sb.InodeBitmapBlock, sb.DataBitmapBlock, sb.InodeTableStart)

	inodeBitmap, err := img.ReadBlock(sb.InodeBitmapBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to read inode bitmap: %v", err)
	}
	dataBitmap, err := img.ReadBlock(sb.DataBitmapBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to read data bitmap: %v", err)
	}

	inodes := make([]*vsfs.Inode, geo.InodeCount)
	rec := make([]byte, geo.InodeSize)
	tableOff := uint64(sb.InodeTableStart) * uint64(geo.BlockSize)
	for i := range inodes {
		off := tableOff + uint64(i)*uint64(geo.InodeSize)
		if err := img.Pread(rec, off); err != nil {
			return nil, fmt.Errorf("failed to read inode %d: %v", i, err)
		}
		ino, err := vsfs.DecodeInode(rec)
		if err != nil {
			return nil, err
		}
		inodes[i] = ino
	}
	vsfs.Infof("loaded superblock, bitmaps and %d inodes", len(inodes))

	return &Context{
		Img:         img,
		Geo:         geo,
		Super:       sb,
		InodeBitmap: vsfs.Bitmap(inodeBitmap),
		DataBitmap:  vsfs.Bitmap(dataBitmap),
		Inodes:      inodes,
	}, nil
}

// Persist writes the superblock, both bitmaps, and the full inode table
// back to the image, in that order. The bitmap and inode table locations
// come from the in-memory superblock, which the repair engine has already
// corrected by the time this runs.
func (ctx *Context) Persist() error {
	blk, err := ctx.Super.Encode()
	if err != nil {
		return err
	}
	if err := ctx.Img.WriteBlock(0, blk); err != nil {
		return fmt.Errorf("failed to write superblock: %v", err)
	}

	if err := ctx.Img.WriteBlock(ctx.Super.InodeBitmapBlock, ctx.InodeBitmap); err != nil {
		return fmt.Errorf("failed to write inode bitmap: %v", err)
	}
	if err := ctx.Img.WriteBlock(ctx.Super.DataBitmapBlock, ctx.DataBitmap); err != nil {
		return fmt.Errorf("failed to write data bitmap: %v", err)
	}

	tableOff := uint64(ctx.Super.InodeTableStart) * uint64(ctx.Geo.BlockSize)
	for i, ino := range ctx.Inodes {
		rec, err := ino.Encode()
		if err != nil {
			return err
		}
		off := tableOff + uint64(i)*uint64(ctx.Geo.InodeSize)
		if err := ctx.Img.Pwrite(rec, off); err != nil {
			return fmt.Errorf("failed to write inode %d: %v", i, err)
		}
	}
	vsfs.Infof("persisted superblock, bitmaps and %d inodes", len(ctx.Inodes))
	return nil
}
