package lang

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates limits the classifier to languages a binding may exist for.
var candidates = []string{"JSON", "JavaScript", "HTML", "Markdown", "CSS", "TypeScript", "YAML"}

// Detect picks the binding for a file. The extension decides first; then
// the shebang, a few unambiguous content patterns, and finally go-enry's
// filename and classifier heuristics.
func (r *Registry) Detect(path string, content []byte) (Binding, bool) {
	if b, ok := r.ForPath(path); ok {
		return b, true
	}

	if name, safe := enry.GetLanguageByShebang(content); safe {
		if b, ok := r.Get(normalize(name)); ok {
			return b, true
		}
	}

	if name := detectByPattern(content); name != "" {
		if b, ok := r.Get(name); ok {
			return b, true
		}
	}

	if path != "" {
		if name := enry.GetLanguage(filepath.Base(path), content); name != "" {
			if b, ok := r.Get(normalize(name)); ok {
				return b, true
			}
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, false
	}
	if name, safe := enry.GetLanguageByClassifier(content, candidates); safe && name != "" {
		if b, ok := r.Get(normalize(name)); ok {
			return b, true
		}
	}
	return nil, false
}

// Detect uses DefaultRegistry.
func Detect(path string, content []byte) (Binding, bool) {
	return DefaultRegistry.Detect(path, content)
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	lower := bytes.ToLower(trimmed)
	if bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html")) {
		return "html"
	}

	if (trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}') ||
		(trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']') {
		if bytes.Contains(trimmed, []byte(`":`)) || trimmed[0] == '[' {
			return "json"
		}
	}

	if bytes.HasPrefix(trimmed, []byte("# ")) || bytes.HasPrefix(trimmed, []byte("---\n")) {
		return "markdown"
	}
	return ""
}

// normalize converts go-enry language names to binding names.
func normalize(name string) string {
	return strings.ToLower(name)
}
