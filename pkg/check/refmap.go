package check

import (
	"encoding/binary"
	"fmt"
)

// readIndirect reads an indirect block off the image and decodes it as an
// array of 32-bit block numbers. The same indirect block may be read once
// per pass; at this geometry that is a handful of 4 KiB reads per run.
func (ctx *Context) readIndirect(block uint32) ([]uint32, error) {
	raw, err := ctx.Img.ReadBlock(block)
	if err != nil {
		return nil, fmt.Errorf("failed to read indirect block %d: %v", block, err)
	}
	entries := make([]uint32, ctx.Geo.PointersPerBlock())
	for i := range entries {
		entries[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return entries, nil
}

// forEachClaim visits every nonzero block number each valid inode claims:
// its direct pointers, its single indirect pointer, and every nonzero entry
// of an in-range indirect block. An out-of-range indirect pointer is still
// reported to fn, but its contents are never read. Double and triple
// indirect pointers are never traversed; that is a documented scope limit
// of the checker, not an approximation.
func (ctx *Context) forEachClaim(fn func(ino int, block uint32)) error {
	for i, ino := range ctx.Inodes {
		if !ino.Valid() {
			continue
		}
		for _, b := range ino.Direct {
			if b != 0 {
				fn(i, b)
			}
		}
		if ino.Indirect == 0 {
			continue
		}
		fn(i, ino.Indirect)
		if !ctx.Geo.InDataRegion(ino.Indirect) {
			continue
		}
		entries, err := ctx.readIndirect(ino.Indirect)
		if err != nil {
			return err
		}
		for _, b := range entries {
			if b != 0 {
				fn(i, b)
			}
		}
	}
	return nil
}

// BuildRefMap derives, from the live inodes alone, which data blocks are
// actually in use and by whom. The first claimant wins; later claimants are
// not recorded here because duplicate ownership is a separate pass.
// Pointers outside the data region are skipped; the bad-block pass reports
// those. The map is rebuilt fresh on every validation pass since it depends
// on current inode contents.
func (ctx *Context) BuildRefMap() (map[uint32]int, error) {
	refs := make(map[uint32]int)
	err := ctx.forEachClaim(func(ino int, block uint32) {
		if !ctx.Geo.InDataRegion(block) {
			return
		}
		if _, taken := refs[block]; !taken {
			refs[block] = ino
		}
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}
