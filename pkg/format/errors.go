package format

import (
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/format/ir"
	"github.com/yaklabco/formatkit/pkg/text"
)

var (
	// ErrStructural marks malformed IR, invalid offsets and lost comments.
	// It is fatal for the file.
	ErrStructural = ir.ErrStructural

	// ErrSyntax is returned by rules that meet a node they cannot format:
	// bogus nodes, skipped trivia or a missing required child. The node is
	// printed verbatim instead.
	ErrSyntax = errors.Base("syntax error")

	// ErrCancelled is returned when the context is cancelled mid-format.
	ErrCancelled = errors.Base("formatting cancelled")
)

// Severity is the importance of a diagnostic.
type Severity uint8

// Severities.
const (
	SeverityInformation Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "information"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a message about the formatted source.
type Diagnostic struct {
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Range    text.Range `json:"range"`
}
