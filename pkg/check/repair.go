package check

import (
	"encoding/binary"
	"fmt"

	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

// writeIndirect encodes an entry array and writes it back over its block.
func (ctx *Context) writeIndirect(block uint32, entries []uint32) error {
	raw := make([]byte, ctx.Geo.BlockSize)
	for i, e := range entries {
		binary.LittleEndian.PutUint32(raw[i*4:], e)
	}
	if err := ctx.Img.WriteBlock(block, raw); err != nil {
		return fmt.Errorf("failed to write indirect block %d: %v", block, err)
	}
	return nil
}

// Repair applies every deterministic fix the checker knows and persists the
// corrected structures. Each fix recomputes its own invariant from current
// state rather than replaying recorded findings, so running the engine
// against an already-repaired image changes nothing.
//
// Fix order: superblock fields, inode bitmap, data bitmap, out-of-range
// block references. Duplicate ownership is left untouched. The return value
// is the number of individual fixes applied.
func (ctx *Context) Repair() (int, error) {
	fixed := 0

	fixed += ctx.repairSuperblock()
	fixed += ctx.repairInodeBitmap()

	n, err := ctx.repairDataBitmap()
	if err != nil {
		return fixed, err
	}
	fixed += n

	n, err = ctx.repairBadBlocks()
	if err != nil {
		return fixed, err
	}
	fixed += n

	// Duplicate ownership stays as found: the engine never decides which
	// claimant keeps a shared block.

	if err := ctx.Persist(); err != nil {
		return fixed, err
	}
	return fixed, nil
}

// repairSuperblock overwrites every deviating field with its supported
// constant. Unlike the validator, a zero inode count is rewritten too: the
// rest of the checker needs the populated value.
func (ctx *Context) repairSuperblock() int {
	fixed := 0
	geo := ctx.Geo
	sb := ctx.Super

	if sb.Magic != vsfs.Magic {
		sb.Magic = vsfs.Magic
		fixed++
	}
	if sb.BlockSize != geo.BlockSize {
		sb.BlockSize = geo.BlockSize
		fixed++
	}
	if sb.TotalBlocks != geo.TotalBlocks {
		sb.TotalBlocks = geo.TotalBlocks
		fixed++
	}
	if sb.InodeBitmapBlock != geo.InodeBitmapBlock {
		sb.InodeBitmapBlock = geo.InodeBitmapBlock
		fixed++
	}
	if sb.DataBitmapBlock != geo.DataBitmapBlock {
		sb.DataBitmapBlock = geo.DataBitmapBlock
		fixed++
	}
	if sb.InodeTableStart != geo.InodeTableStart {
		sb.InodeTableStart = geo.InodeTableStart
		fixed++
	}
	if sb.DataBlockStart != geo.DataBlockStart {
		sb.DataBlockStart = geo.DataBlockStart
		fixed++
	}
	if sb.InodeSize != geo.InodeSize {
		sb.InodeSize = geo.InodeSize
		fixed++
	}
	if sb.InodeCount != geo.InodeCount {
		sb.InodeCount = geo.InodeCount
		fixed++
	}
	return fixed
}

// repairInodeBitmap makes every bitmap bit match the validity recomputed
// from its inode record.
func (ctx *Context) repairInodeBitmap() int {
	fixed := 0
	for i, ino := range ctx.Inodes {
		marked := ctx.InodeBitmap.Get(uint32(i))
		valid := ino.Valid()

		if marked && !valid {
			ctx.InodeBitmap.Clear(uint32(i))
			fixed++
		} else if !marked && valid {
			ctx.InodeBitmap.Set(uint32(i))
			fixed++
		}
	}
	return fixed
}

// repairDataBitmap rebuilds the reference map from the inodes as they now
// stand and makes every data bitmap bit match it.
func (ctx *Context) repairDataBitmap() (int, error) {
	refs, err := ctx.BuildRefMap()
	if err != nil {
		return 0, err
	}

	fixed := 0
	for b := ctx.Geo.DataBlockStart; b < ctx.Geo.TotalBlocks; b++ {
		idx := b - ctx.Geo.DataBlockStart
		marked := ctx.DataBitmap.Get(idx)
		_, referenced := refs[b]

		if marked && !referenced {
			ctx.DataBitmap.Clear(idx)
			fixed++
		} else if !marked && referenced {
			ctx.DataBitmap.Set(idx)
			fixed++
		}
	}
	return fixed, nil
}

// repairBadBlocks zeroes every out-of-range block reference: direct slots,
// the indirect pointer itself, and entries inside an otherwise valid
// indirect block. A modified indirect block is written back immediately,
// before the bulk persist, since Persist only covers the metadata region.
func (ctx *Context) repairBadBlocks() (int, error) {
	fixed := 0
	for i, ino := range ctx.Inodes {
		if !ino.Valid() {
			continue
		}

		for slot, b := range ino.Direct {
			if ctx.badRange(b) {
				ino.Direct[slot] = 0
				fixed++
			}
		}

		if ino.Indirect == 0 {
			continue
		}
		if ctx.badRange(ino.Indirect) {
			ino.Indirect = 0
			fixed++
			continue
		}

		entries, err := ctx.readIndirect(ino.Indirect)
		if err != nil {
			return fixed, err
		}
		modified := false
		for slot, b := range entries {
			if ctx.badRange(b) {
				entries[slot] = 0
				modified = true
				fixed++
			}
		}
		if modified {
			if err := ctx.writeIndirect(ino.Indirect, entries); err != nil {
				return fixed, err
			}
			vsfs.Debugf("rewrote indirect block %d of inode %d", ino.Indirect, i)
		}
	}
	return fixed, nil
}
