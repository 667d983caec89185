package check

import (
	"fmt"
	"io"
)

// printFindings writes one line per finding, in the order the validators
// produced them.
func printFindings(w io.Writer, findings []Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "Error: %s\n", f.Detail)
	}
}

// printSummary writes the per-validator status table. The bitmap and
// superblock categories read OK when clean; the duplicate and bad-block
// categories read NONE FOUND, matching how the findings are phrased.
func printSummary(w io.Writer, findings []Finding, recheck bool) {
	counts := make(map[Category]int)
	for _, f := range findings {
		counts[f.Category]++
	}

	errLabel := "ERRORS FOUND"
	if recheck {
		errLabel = "ERRORS REMAIN"
	}
	status := func(c Category, cleanLabel string) string {
		if counts[c] == 0 {
			return cleanLabel
		}
		return errLabel
	}

	if recheck {
		fmt.Fprintf(w, "\nFile system re-check summary:\n")
	} else {
		fmt.Fprintf(w, "\nFile system check summary:\n")
	}
	fmt.Fprintf(w, "%s: %s\n", CatSuperblock, status(CatSuperblock, "OK"))
	fmt.Fprintf(w, "%s: %s\n", CatInodeBitmap, status(CatInodeBitmap, "OK"))
	fmt.Fprintf(w, "%s: %s\n", CatDataBitmap, status(CatDataBitmap, "OK"))
	fmt.Fprintf(w, "%s: %s\n", CatDuplicate, status(CatDuplicate, "NONE FOUND"))
	fmt.Fprintf(w, "%s: %s\n", CatBadBlock, status(CatBadBlock, "NONE FOUND"))
}
