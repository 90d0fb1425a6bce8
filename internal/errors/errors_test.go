package errors

import (
	"strings"
	"testing"

	"github.com/knight-lang/go-knight/internal/token"
)

func TestCompilerError_Format(t *testing.T) {
	tests := []struct {
		name        string
		pos         token.Position
		message     string
		source      string
		file        string
		wantContain []string
	}{
		{
			name:    "simple error with file",
			pos:     token.Position{Line: 1, Column: 10},
			message: "unknown function 'Z'",
			source:  "+ 1 Z",
			file:    "test.kn",
			wantContain: []string{
				"Error in test.kn:1:10",
				"   1 | + 1 Z",
				"^",
				"unknown function 'Z'",
			},
		},
		{
			name:    "error without file",
			pos:     token.Position{Line: 5, Column: 15},
			message: "unterminated string",
			source:  "line1\nline2\nline3\nline4\nline5 with error here\nline6",
			file:    "",
			wantContain: []string{
				"Error at line 5:15",
				"   5 | line5 with error here",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCompilerError(tt.pos, tt.message, tt.source, tt.file)
			got := err.Format(false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() = %q, want it to contain %q", got, want)
				}
			}
		})
	}
}

func TestCompilerError_ErrorInterface(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "T", "")
	if err.Error() != err.Format(false) {
		t.Errorf("Error() should match Format(false)")
	}
}

func TestCompilerError_FormatWithContext(t *testing.T) {
	src := "line1\nline2\n+ 1 Z\nline4\nline5"
	err := NewCompilerError(token.Position{Line: 3, Column: 5}, "unknown function 'Z'", src, "test.kn")
	got := err.FormatWithContext(1, false)
	for _, want := range []string{
		"Error in test.kn:3:5",
		"line2",
		"+ 1 Z",
		"line4",
		"^",
		"unknown function 'Z'",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatWithContext() = %q, want it to contain %q", got, want)
		}
	}
}

func TestRuntimeError_Error(t *testing.T) {
	err := NewRuntimeError(DivisionByZero, "division by zero")
	if got := err.Error(); got != "DivisionByZero: division by zero" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRuntimeError_WithStack(t *testing.T) {
	base := NewRuntimeError(TypeError, "not callable")
	st := NewStackTrace()
	st = append(st, NewStackFrame("CALL", "<eval>", &token.Position{Line: 3, Column: 4}))
	withStack := base.WithStack(st)

	if len(base.Stack) != 0 {
		t.Errorf("original error should be unmodified")
	}
	if !strings.Contains(withStack.Error(), "CALL") {
		t.Errorf("Error() should include stack frame, got %q", withStack.Error())
	}
}
