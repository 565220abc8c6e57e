package driver

import (
	"fmt"
	"os"
)

// Boot reads the ROM image at path and loads it into core. It returns the
// image size.
func Boot(core Core, path string) (int, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rom: %w", err)
	}
	if err := core.Load(rom); err != nil {
		return 0, fmt.Errorf("load rom %s: %w", path, err)
	}
	return len(rom), nil
}
