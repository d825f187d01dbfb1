package logging

// Structured log keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldLanguage   = "language"
	FieldDuration   = "duration"

	FieldJobs  = "jobs"
	FieldWrite = "write"
	FieldCheck = "check"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"
	FieldDiagnostics     = "diagnostics"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
)
