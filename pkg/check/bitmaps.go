package check

import (
	"fmt"
)

// CheckInodeBitmap compares, for every inode slot, the validity recomputed
// from the inode record against the slot's bit in the inode bitmap. The
// bitmap is never trusted as the source of truth; the record is. Both
// mismatch directions are separate finding kinds.
func (ctx *Context) CheckInodeBitmap() bool {
	consistent := true

	for i, ino := range ctx.Inodes {
		marked := ctx.InodeBitmap.Get(uint32(i))
		valid := ino.Valid()

		if marked && !valid {
			ctx.record(Finding{
				Category: CatInodeBitmap,
				Inode:    i,
				Slot:     -1,
				Observed: 1,
				Expected: 0,
				Detail:   fmt.Sprintf("Inode %d is marked as used in bitmap but is not valid", i),
			})
			consistent = false
		} else if !marked && valid {
			ctx.record(Finding{
				Category: CatInodeBitmap,
				Inode:    i,
				Slot:     -1,
				Observed: 0,
				Expected: 1,
				Detail:   fmt.Sprintf("Inode %d is valid but not marked as used in bitmap", i),
			})
			consistent = false
		}
	}

	return consistent
}

// CheckDataBitmap rebuilds the reference map from the live inodes and then
// sweeps the whole data region comparing each bitmap bit against presence
// in the map. A set bit with no referencing inode and a referenced block
// with a clear bit are both findings.
func (ctx *Context) CheckDataBitmap() (bool, error) {
	refs, err := ctx.BuildRefMap()
	if err != nil {
		return false, err
	}

	consistent := true
	for b := ctx.Geo.DataBlockStart; b < ctx.Geo.TotalBlocks; b++ {
		marked := ctx.DataBitmap.Get(b - ctx.Geo.DataBlockStart)
		owner, referenced := refs[b]

		if marked && !referenced {
			ctx.record(Finding{
				Category: CatDataBitmap,
				Inode:    -1,
				Slot:     -1,
				Block:    b,
				Observed: 1,
				Expected: 0,
				Detail:   fmt.Sprintf("Block %d is marked as used in data bitmap but not referenced by any inode", b),
			})
			consistent = false
		} else if !marked && referenced {
			ctx.record(Finding{
				Category: CatDataBitmap,
				Inode:    owner,
				Slot:     -1,
				Block:    b,
				Observed: 0,
				Expected: 1,
				Detail:   fmt.Sprintf("Block %d is referenced by inode %d but not marked as used in data bitmap", b, owner),
			})
			consistent = false
		}
	}

	return consistent, nil
}
