package vsfs

import (
	"fmt"
)

// Debug-level constants
const (
	LevelErr     uint8 = 1
	LevelWarn    uint8 = 2
	LevelInfo    uint8 = 3
	LevelDebug   uint8 = 4
	LevelVerbose uint8 = 5
)

// Global debug level
var debugLevel = LevelWarn

// SetDebugLevel sets the global debug level
func SetDebugLevel(level uint8) {
	debugLevel = level
}

// Errorf prints an error message
func Errorf(format string, a ...interface{}) {
	if debugLevel >= LevelErr {
		fmt.Printf("[ERROR] "+format+"\n", a...)
	}
}

// Warnf prints a warning message
func Warnf(format string, a ...interface{}) {
	if debugLevel >= LevelWarn {
		fmt.Printf("[WARN] "+format+"\n", a...)
	}
}

// Infof prints an info message
func Infof(format string, a ...interface{}) {
	if debugLevel >= LevelInfo {
		fmt.Printf("[INFO] "+format+"\n", a...)
	}
}

// Debugf prints a debug message
func Debugf(format string, a ...interface{}) {
	if debugLevel >= LevelDebug {
		fmt.Printf("[DEBUG] "+format+"\n", a...)
	}
}

// DumpHex prints a hex dump of a byte slice
func DumpHex(data []byte, prefix string) {
	if debugLevel >= LevelDebug {
		fmt.Printf("%s: ", prefix)
		for i, b := range data {
			fmt.Printf("%02x ", b)
			if (i+1)%16 == 0 && i < len(data)-1 {
				fmt.Printf("\n%s: ", prefix)
			}
		}
		fmt.Println()
	}
}
