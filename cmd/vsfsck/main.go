package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vsfs-tools/vsfsck/pkg/check"
	"github.com/vsfs-tools/vsfsck/pkg/vsfs"
)

func main() {
	cfg := vsfs.DefaultConfig()
	debugLevel := int(vsfs.LevelWarn)

	root := &cobra.Command{
		Use:   "vsfsck <image>",
		Short: "Check and repair a VSFS file system image",
		Long: `vsfsck validates the superblock, allocation bitmaps and inode table of a
VSFS image against the single supported geometry, reports every
inconsistency it finds, and deterministically repairs the repairable ones.

The exit code reflects only whether the run itself could execute: findings,
fixed or not, are reported on standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vsfs.SetDebugLevel(uint8(debugLevel))
			cfg.ImagePath = args[0]
			cfg.DebugLevel = uint8(debugLevel)

			_, err := check.Run(cfg, os.Stdout)
			return err
		},
	}

	root.Flags().IntVarP(&debugLevel, "debug", "d", int(vsfs.LevelWarn), "Debug level (1-5)")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Report findings without modifying the image")
	root.Flags().StringVar(&cfg.BackupPath, "backup", "", "Write an lz4-compressed snapshot of the image before repairing")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
