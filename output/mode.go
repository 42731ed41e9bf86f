package output

import (
	"path/filepath"
	"strings"
)

// Mode decides what happens to each rendered chart. It is chosen once per
// invocation.
type Mode int

const (
	// Save writes the chart next to its input file.
	Save Mode = iota
	// Display shows the chart in a viewer and waits for it to be dismissed.
	Display
)

func (m Mode) String() string {
	switch m {
	case Save:
		return "save"
	case Display:
		return "display"
	default:
		return "unknown"
	}
}

// ModeFor maps the --view flag to a Mode.
func ModeFor(view bool) Mode {
	if view {
		return Display
	}
	return Save
}

// PathFor replaces the extension of input with format, e.g. data.json becomes
// data.png. Inputs without an extension get one appended.
func PathFor(input, format string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	// A leading dot marks a hidden file, not an extension.
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + "." + format
}

var contentTypes = map[string]string{
	"eps":  "application/postscript",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

// ContentType returns the MIME type of an image format supported by
// gonum/plot, falling back to application/octet-stream.
func ContentType(format string) string {
	if t, ok := contentTypes[strings.ToLower(format)]; ok {
		return t
	}
	return "application/octet-stream"
}
