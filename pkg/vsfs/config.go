package vsfs

// Config represents one checker run configuration
type Config struct {
	// Image path
	ImagePath string

	// Debug level
	DebugLevel uint8

	// DryRun reports findings without mutating the image
	DryRun bool

	// BackupPath, when set, receives an lz4-compressed snapshot of the
	// image taken before any repair is applied
	BackupPath string

	// Geometry the image is checked against
	Geometry Geometry
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DebugLevel: LevelWarn,
		Geometry:   DefaultGeometry(),
	}
}
