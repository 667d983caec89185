package check

import (
	"fmt"
)

// badRange reports whether a nonzero block number falls outside the data
// region [data block start, total blocks).
func (ctx *Context) badRange(block uint32) bool {
	return block != 0 && !ctx.Geo.InDataRegion(block)
}

// CheckBadBlocks verifies that every nonzero block reference a valid inode
// holds stays inside the data region: each direct pointer, the single
// indirect pointer itself, and, when the indirect pointer is in range,
// every nonzero entry inside the indirect block. Each violation is keyed by
// inode and slot so the repair engine can zero exactly that field.
func (ctx *Context) CheckBadBlocks() (bool, error) {
	consistent := true

	for i, ino := range ctx.Inodes {
		if !ino.Valid() {
			continue
		}

		for slot, b := range ino.Direct {
			if ctx.badRange(b) {
				ctx.record(Finding{
					Category: CatBadBlock,
					Inode:    i,
					Slot:     slot,
					Block:    b,
					Observed: b,
					Detail:   fmt.Sprintf("Inode %d has direct block %d with invalid block number %d", i, slot, b),
				})
				consistent = false
			}
		}

		if ino.Indirect == 0 {
			continue
		}
		if ctx.badRange(ino.Indirect) {
			ctx.record(Finding{
				Category: CatBadBlock,
				Inode:    i,
				Slot:     -1,
				Block:    ino.Indirect,
				Observed: ino.Indirect,
				Detail:   fmt.Sprintf("Inode %d has invalid indirect block number %d", i, ino.Indirect),
			})
			consistent = false
			continue
		}

		entries, err := ctx.readIndirect(ino.Indirect)
		if err != nil {
			return false, err
		}
		for slot, b := range entries {
			if ctx.badRange(b) {
				ctx.record(Finding{
					Category: CatBadBlock,
					Inode:    i,
					Slot:     slot,
					Block:    b,
					Observed: b,
					Detail:   fmt.Sprintf("Inode %d has indirect entry %d with invalid block number %d", i, slot, b),
				})
				consistent = false
			}
		}
	}

	return consistent, nil
}
