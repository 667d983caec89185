package check

import (
	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

// Category labels which validator produced a finding.
type Category int

// Finding categories, one per validator.
const (
	CatSuperblock Category = iota
	CatInodeBitmap
	CatDataBitmap
	CatDuplicate
	CatBadBlock
)

// String returns the category label used in run summaries.
func (c Category) String() string {
	switch c {
	case CatSuperblock:
		return "Superblock"
	case CatInodeBitmap:
		return "Inode bitmap"
	case CatDataBitmap:
		return "Data bitmap"
	case CatDuplicate:
		return "Duplicate blocks"
	case CatBadBlock:
		return "Bad blocks"
	}
	return "Unknown"
}

// Finding is one detected inconsistency: where it was seen, what was
// observed, and what was expected. Findings never abort a scan; they
// accumulate until the run reports them.
type Finding struct {
	Category  Category
	Field     string // superblock field name, "" elsewhere
	Inode     int    // inode index, -1 when not inode-scoped
	Slot      int    // direct slot or indirect entry index, -1 when n/a
	Block     uint32 // block number involved, 0 when n/a
	Observed  uint32
	Expected  uint32
	Claimants []int  // duplicate findings: every inode claiming the block
	Detail    string // human-readable description
}

// Context owns everything one checker run loads and derives from a single
// image: the superblock, both bitmaps, the inode table, and the findings
// the validators accumulate. Passing it explicitly keeps module state out
// of globals, so several images can be checked within one process.
type Context struct {
	Img   *vsfs.Image
	Geo   vsfs.Geometry
	Super *vsfs.Superblock

	InodeBitmap vsfs.Bitmap
	DataBitmap  vsfs.Bitmap
	Inodes      []*vsfs.Inode

	Findings []Finding
}

func (ctx *Context) record(f Finding) {
	ctx.Findings = append(ctx.Findings, f)
}

// ErrorCount is the number of findings accumulated so far.
func (ctx *Context) ErrorCount() int {
	return len(ctx.Findings)
}

// CountByCategory counts the findings one validator produced.
func (ctx *Context) CountByCategory(c Category) int {
	n := 0
	for _, f := range ctx.Findings {
		if f.Category == c {
			n++
		}
	}
	return n
}

// ResetFindings clears accumulated findings before a re-validation pass.
func (ctx *Context) ResetFindings() {
	ctx.Findings = nil
}
