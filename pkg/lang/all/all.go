// Package all registers every language binding with lang.DefaultRegistry.
package all

import (
	_ "github.com/yaklabco/formatkit/pkg/lang/html"     // HTML
	_ "github.com/yaklabco/formatkit/pkg/lang/js"       // JavaScript
	_ "github.com/yaklabco/formatkit/pkg/lang/json"     // JSON and JSONC
	_ "github.com/yaklabco/formatkit/pkg/lang/markdown" // Markdown
)
