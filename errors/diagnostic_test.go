package errors

import (
	"fmt"
	"testing"
)

func TestDiagnosticErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		d    Diagnostic
	}{
		{
			name: "message only",
			d:    Diagnostic{Code: "xml-no-root", Message: "document has no root element"},
			want: "[xml-no-root] document has no root element",
		},
		{
			name: "with path",
			d:    Diagnostic{Code: "xmlns-unbound-prefix", Message: "prefix a is not bound", Path: "/root/a:child"},
			want: "[xmlns-unbound-prefix] prefix a is not bound at /root/a:child",
		},
		{
			name: "with all",
			d: Diagnostic{
				Code:     "xml-mismatched-end",
				Message:  "end tag does not match",
				Path:     "/root/child",
				Expected: []string{"child"},
				Actual:   "other",
			},
			want: "[xml-mismatched-end] end tag does not match at /root/child (expected: child) (actual: other)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDiagnosticf(t *testing.T) {
	d := NewDiagnosticf(ErrUnboundPrefix, "/root", "prefix %s is not bound", "a")
	if d.Code != string(ErrUnboundPrefix) {
		t.Fatalf("Code = %q, want %q", d.Code, ErrUnboundPrefix)
	}
	if d.Message != "prefix a is not bound" {
		t.Fatalf("Message = %q, want %q", d.Message, "prefix a is not bound")
	}
	if d.Path != "/root" {
		t.Fatalf("Path = %q, want %q", d.Path, "/root")
	}
}

func TestDiagnosticListError(t *testing.T) {
	one := NewDiagnostic(ErrNoRoot, "document has no root element", "")
	two := NewDiagnostic(ErrUnclosedElement, "element root is not closed", "/root")

	if got, want := (DiagnosticList{one}).Error(), "[xml-no-root] document has no root element"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if got, want := (DiagnosticList{one, two}).Error(), "[xml-no-root] document has no root element (and 1 more)"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestAsDiagnostics(t *testing.T) {
	list := DiagnosticList{
		NewDiagnostic(ErrXMLSyntax, "unexpected EOF", ""),
		NewDiagnostic(ErrUnboundPrefix, "prefix a is not bound", "/a:root"),
	}
	wrapped := fmt.Errorf("parse doc.xml: %w", list)

	got, ok := AsDiagnostics(wrapped)
	if !ok {
		t.Fatalf("AsDiagnostics() ok = false, want true")
	}
	if len(got) != 2 {
		t.Fatalf("AsDiagnostics() len = %d, want 2", len(got))
	}
	if !HasCode(wrapped, ErrUnboundPrefix) {
		t.Fatalf("HasCode(%s) = false, want true", ErrUnboundPrefix)
	}
	if HasCode(wrapped, ErrNoRoot) {
		t.Fatalf("HasCode(%s) = true, want false", ErrNoRoot)
	}
	if _, ok := AsDiagnostics(fmt.Errorf("plain")); ok {
		t.Fatalf("AsDiagnostics(plain) ok = true, want false")
	}
}
