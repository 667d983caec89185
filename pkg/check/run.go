package check

import (
	"fmt"
	"io"

	"github.com/vsfs-tools/vsfsck/pkg/backup"
	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

// Result summarizes one checker run.
type Result struct {
	Findings  []Finding // findings from the first validation pass
	Repaired  bool      // whether the repair engine ran
	Fixed     int       // individual fixes applied
	Remaining []Finding // findings left after repair; meaningful only when Repaired
}

// validateAll runs the five validators in their fixed order. Findings never
// stop a pass; only host I/O failures do.
func (ctx *Context) validateAll() error {
	ctx.CheckSuperblock()
	ctx.CheckInodeBitmap()
	if _, err := ctx.CheckDataBitmap(); err != nil {
		return err
	}
	if _, err := ctx.CheckDuplicates(); err != nil {
		return err
	}
	if _, err := ctx.CheckBadBlocks(); err != nil {
		return err
	}
	return nil
}

// Run drives one full cycle over the image named by cfg: load, validate,
// report, and, when findings exist and DryRun is off, repair, persist,
// re-validate, and report the before/after comparison. At most one repair
// cycle runs; whatever remains after it is left for manual follow-up.
func Run(cfg *vsfs.Config, w io.Writer) (*Result, error) {
	img, err := vsfs.OpenImage(cfg.ImagePath, cfg.Geometry.BlockSize)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	ctx, err := Load(img, cfg.Geometry)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w, "Checking VSFS file system consistency...")
	if err := ctx.validateAll(); err != nil {
		return nil, err
	}

	printFindings(w, ctx.Findings)
	printSummary(w, ctx.Findings, false)
	fmt.Fprintf(w, "\nTotal errors found: %d\n", ctx.ErrorCount())

	res := &Result{Findings: ctx.Findings}
	if ctx.ErrorCount() == 0 {
		fmt.Fprintln(w, "\nNo errors found. File system is consistent.")
		return res, nil
	}
	if cfg.DryRun {
		fmt.Fprintln(w, "\nDry run: leaving all errors in place.")
		return res, nil
	}

	if cfg.BackupPath != "" {
		if err := backup.Snapshot(cfg.ImagePath, cfg.BackupPath); err != nil {
			return nil, fmt.Errorf("failed to back up image: %v", err)
		}
		fmt.Fprintf(w, "\nBacked up image to %s\n", cfg.BackupPath)
	}

	fmt.Fprintln(w, "\nAttempting to fix errors...")
	original := ctx.ErrorCount()
	fixed, err := ctx.Repair()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Errors fixed: %d\n", fixed)
	res.Repaired = true
	res.Fixed = fixed

	ctx.ResetFindings()
	fmt.Fprintln(w, "\nRe-checking file system for remaining errors...")
	if err := ctx.validateAll(); err != nil {
		return nil, err
	}

	printFindings(w, ctx.Findings)
	printSummary(w, ctx.Findings, true)
	fmt.Fprintf(w, "\nOriginal errors: %d\n", original)
	fmt.Fprintf(w, "Remaining errors: %d\n", ctx.ErrorCount())

	res.Remaining = ctx.Findings
	if ctx.ErrorCount() == 0 {
		fmt.Fprintln(w, "\nAll errors successfully fixed! File system is now consistent.")
	} else {
		fmt.Fprintln(w, "\nSome errors could not be fixed automatically. Manual intervention may be required.")
	}
	return res, nil
}
