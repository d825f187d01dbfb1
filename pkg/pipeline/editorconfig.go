package pipeline

import (
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format/options"
)

const editorconfigName = ".editorconfig"

// editorconfigs reads .editorconfig files through an afero.Fs and keeps
// every parsed file for the rest of the run.
type editorconfigs struct {
	fs afero.Fs

	mu     sync.Mutex
	parsed map[string]*editorconfig.Editorconfig // nil when the file is absent
}

func newEditorconfigs(fsys afero.Fs) *editorconfigs {
	return &editorconfigs{fs: fsys, parsed: make(map[string]*editorconfig.Editorconfig)}
}

func (e *editorconfigs) load(dir string) (*editorconfig.Editorconfig, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ec, ok := e.parsed[dir]; ok {
		return ec, nil
	}
	path := filepath.Join(dir, editorconfigName)
	f, err := e.fs.Open(path)
	if err != nil {
		e.parsed[dir] = nil
		return nil, nil //nolint:nilerr // A missing file has no settings.
	}
	defer f.Close()

	ec, err := editorconfig.Parse(f)
	if err != nil {
		return nil, errors.Errorf("parse %s: %w", path, err)
	}
	e.parsed[dir] = ec
	return ec, nil
}

// properties collects the editorconfig properties for path. Files nearer
// to path win; the search stops at a file marked root.
func (e *editorconfigs) properties(path string) (map[string]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolve %s: %w", path, err)
	}

	var chain []map[string]string
	for dir := filepath.Dir(abs); ; {
		ec, err := e.load(dir)
		if err != nil {
			return nil, err
		}
		if ec != nil {
			rel := filepath.ToSlash(strings.TrimPrefix(abs, strings.TrimSuffix(dir, string(filepath.Separator))))
			def, err := ec.GetDefinitionForFilename(rel)
			if err != nil {
				return nil, errors.Errorf("match %s: %w", filepath.Join(dir, editorconfigName), err)
			}
			chain = append(chain, def.Raw)
			if ec.Root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	props := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i] {
			props[strings.ToLower(k)] = strings.ToLower(v)
		}
	}
	return props, nil
}

// editorconfigOverrides maps editorconfig properties onto format options.
// Values formatkit cannot use, such as max_line_length = off, are skipped.
func editorconfigOverrides(props map[string]string) options.Overrides {
	var o options.Overrides

	switch props["indent_style"] {
	case "tab":
		o.IndentStyle = ptr(options.IndentTab)
	case "space":
		o.IndentStyle = ptr(options.IndentSpace)
	}

	size := props["indent_size"]
	if size == "tab" || size == "" {
		size = props["tab_width"]
	}
	if n, err := strconv.ParseUint(size, 10, 8); err == nil && n <= options.MaxIndentWidth {
		o.IndentWidth = ptr(uint8(n))
	}

	if n, err := strconv.ParseUint(props["max_line_length"], 10, 16); err == nil &&
		n >= options.MinLineWidth && n <= options.MaxLineWidth {
		o.LineWidth = ptr(uint16(n))
	}

	switch props["end_of_line"] {
	case "lf":
		o.LineEnding = ptr(options.LineEndingLF)
	case "crlf":
		o.LineEnding = ptr(options.LineEndingCRLF)
	case "cr":
		o.LineEnding = ptr(options.LineEndingCR)
	}
	return o
}

func ptr[T any](v T) *T { return &v }
