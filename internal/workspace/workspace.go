// SPDX-License-Identifier: MPL-2.0

// Package workspace answers whether a directory is an engine project.
//
// The check is purely structural: a project is any directory carrying the
// engine's marker descriptor file. No engine subprocess is involved, so the
// check is cheap enough to run before every discovery.
package workspace

import (
	"os"
	"path/filepath"
)

// DefaultMarkerFile is the engine's project descriptor.
const DefaultMarkerFile = "dagger.json"

// IsProject reports whether dir contains the marker descriptor file. A
// missing or unreadable directory is simply not a project.
func IsProject(dir, markerFile string) bool {
	if markerFile == "" {
		markerFile = DefaultMarkerFile
	}
	info, err := os.Stat(filepath.Join(dir, markerFile))
	return err == nil && !info.IsDir()
}
