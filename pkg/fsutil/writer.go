package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o600
)

// ErrEmptyOutputPath is returned when no output path is given.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

// TryWriteFile writes content to output, creating parent directories.
// An existing file is left alone unless force is set. It reports whether the file was written.
func TryWriteFile(content, output string, force bool) (bool, error) {
	if output == "" {
		return false, ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	if !force {
		_, err := os.Stat(output)

		switch {
		case err == nil:
			return false, nil
		case !errors.Is(err, os.ErrNotExist):
			return false, fmt.Errorf("check %s: %w", output, err)
		}
	}

	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	err = os.WriteFile(output, []byte(content), filePermUserRW)
	if err != nil {
		return false, fmt.Errorf("write %s: %w", output, err)
	}

	return true, nil
}
