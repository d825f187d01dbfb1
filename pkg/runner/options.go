// Package runner formats many files concurrently.
package runner

import (
	"github.com/yaklabco/formatkit/pkg/pipeline"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to format. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob patterns. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions are the file extensions to pick up in directories, with
	// the dot. Empty means every extension a registered binding claims.
	Extensions []string

	// Include limits discovered files to those matching one of these
	// doublestar patterns. Empty includes everything.
	Include []string

	// Ignore skips files and directories matching one of these doublestar
	// patterns.
	Ignore []string

	// Jobs is the number of files formatted at once. Zero or less means
	// runtime.NumCPU().
	Jobs int

	// File is passed to every pipeline.ProcessFile call.
	File pipeline.Options
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
