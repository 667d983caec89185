package check

import (
	"fmt"
	"sort"
	"strings"
)

// CheckDuplicates re-walks every valid inode's claims and records every
// claimant per block, not just the first. The traversal repeats work the
// data-bitmap pass already did: that pass only needs presence, this one
// needs full multiplicity. Any data-region block with more than one
// claimant is a finding listing all claimant inode indices.
//
// Duplicate ownership is reported but never repaired; the checker has no
// basis for deciding which claimant keeps the block.
func (ctx *Context) CheckDuplicates() (bool, error) {
	claimants := make(map[uint32][]int)
	err := ctx.forEachClaim(func(ino int, block uint32) {
		if ctx.Geo.InDataRegion(block) {
			claimants[block] = append(claimants[block], ino)
		}
	})
	if err != nil {
		return false, err
	}

	blocks := make([]uint32, 0, len(claimants))
	for b := range claimants {
		if len(claimants[b]) > 1 {
			blocks = append(blocks, b)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i] < blocks[j] })

	for _, b := range blocks {
		owners := claimants[b]
		parts := make([]string, len(owners))
		for i, ino := range owners {
			parts[i] = fmt.Sprintf("%d", ino)
		}
		ctx.record(Finding{
			Category:  CatDuplicate,
			Inode:     -1,
			Slot:      -1,
			Block:     b,
			Claimants: owners,
			Detail:    fmt.Sprintf("Block %d is referenced by multiple inodes: %s", b, strings.Join(parts, " ")),
		})
	}

	return len(blocks) == 0, nil
}
