package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a parse diagnostic.
type ErrorCode string

const (
	// ErrXMLSyntax indicates the tokenizer rejected the input.
	ErrXMLSyntax ErrorCode = "xml-syntax"
	// ErrNoRoot indicates the document has no root element.
	ErrNoRoot ErrorCode = "xml-no-root"
	// ErrMismatchedEnd indicates an end tag that does not close the open element.
	ErrMismatchedEnd ErrorCode = "xml-mismatched-end"
	// ErrUnclosedElement indicates input ended with open elements.
	ErrUnclosedElement ErrorCode = "xml-unclosed-element"
	// ErrUnboundPrefix indicates a qualified name whose prefix is neither
	// declared in the document nor bound by the parser configuration.
	ErrUnboundPrefix ErrorCode = "xmlns-unbound-prefix"
	// ErrInvalidQName indicates a name with an empty part or extra colons.
	ErrInvalidQName ErrorCode = "xmlns-invalid-qname"
	// ErrReservedBinding indicates a declaration that rebinds xml, xmlns or
	// their namespace URIs.
	ErrReservedBinding ErrorCode = "xmlns-reserved-binding"
)

// Diagnostic describes a problem found while parsing, with an optional
// element path and expected/actual context.
type Diagnostic struct {
	Code     string
	Message  string
	Path     string
	Actual   string
	Expected []string
}

// DiagnosticList is an error holding one or more diagnostics.
type DiagnosticList []Diagnostic

// Error returns the first diagnostic and how many follow it.
func (l DiagnosticList) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Error formats the diagnostic with its code, message and context.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "diagnostic <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Code, d.Message)
	if d.Path != "" {
		fmt.Fprintf(&b, " at %s", d.Path)
	}
	if len(d.Expected) > 0 {
		fmt.Fprintf(&b, " (expected: %s)", strings.Join(d.Expected, ", "))
	}
	if d.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s)", d.Actual)
	}
	return b.String()
}

// NewDiagnostic builds a Diagnostic with a code, message, and optional path.
func NewDiagnostic(code ErrorCode, msg, path string) Diagnostic {
	return Diagnostic{Code: string(code), Message: msg, Path: path}
}

// NewDiagnosticf formats a message and builds a Diagnostic.
func NewDiagnosticf(code ErrorCode, path, format string, args ...any) Diagnostic {
	return NewDiagnostic(code, fmt.Sprintf(format, args...), path)
}

// AsDiagnostics extracts diagnostics from an error returned by a parser.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var list DiagnosticList
	if errors.As(err, &list) {
		return []Diagnostic(list), true
	}
	var listPtr *DiagnosticList
	if errors.As(err, &listPtr) && listPtr != nil {
		return []Diagnostic(*listPtr), true
	}
	return nil, false
}

// HasCode reports whether err carries a diagnostic with code.
func HasCode(err error, code ErrorCode) bool {
	list, ok := AsDiagnostics(err)
	if !ok {
		return false
	}
	for _, d := range list {
		if d.Code == string(code) {
			return true
		}
	}
	return false
}
