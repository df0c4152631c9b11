package validation_test

import (
	"testing"

	"github.com/goliatone/go-scriptlink/pkg/validation"
)

func TestIsValidErrorCode(t *testing.T) {
	for code := 0; code <= 5; code++ {
		if !validation.IsValidErrorCode(code) {
			t.Fatalf("expected %d to be valid", code)
		}
	}
	for _, code := range []int{-1, 6, 100} {
		if validation.IsValidErrorCode(code) {
			t.Fatalf("expected %d to be invalid", code)
		}
	}
}

func TestParseErrorCode(t *testing.T) {
	tests := []struct {
		raw   string
		code  int
		valid bool
	}{
		{raw: "0", code: 0, valid: true},
		{raw: "3", code: 3, valid: true},
		{raw: " 5 ", code: 5, valid: true},
		{raw: "6", code: 0, valid: false},
		{raw: "-1", code: 0, valid: false},
		{raw: "abc", code: 0, valid: false},
		{raw: "", code: 0, valid: false},
	}
	for _, tt := range tests {
		code, ok := validation.ParseErrorCode(tt.raw)
		if code != tt.code || ok != tt.valid {
			t.Fatalf("ParseErrorCode(%q): expected (%d, %v), got (%d, %v)", tt.raw, tt.code, tt.valid, code, ok)
		}
	}
}
