package main

import (
	"errors"
	"fmt"
	"os"
)

// UsageError reports an invalid combination of command line arguments. It is
// detected before any file is processed.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

func usageErrorf(format string, a ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, a...)}
}

// validateArgs checks every input path up front so that a bad path never
// leaves the run half done.
func validateArgs(files []string, view bool) error {
	if len(files) == 0 {
		return usageErrorf("expected at least one FILE")
	}
	if view && len(files) != 1 {
		return usageErrorf("--view can only be used with exactly one FILE; got %d", len(files))
	}

	for _, file := range files {
		info, err := os.Stat(file)
		if errors.Is(err, os.ErrNotExist) {
			return usageErrorf("invalid value for FILE: %s does not exist", file)
		}
		if err != nil {
			return usageErrorf("invalid value for FILE: %v", err)
		}
		if info.IsDir() {
			return usageErrorf("invalid value for FILE: %s is a directory", file)
		}
	}
	return nil
}
