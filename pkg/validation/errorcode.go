package validation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-scriptlink/pkg/model"
)

// IsValidErrorCode reports whether code is one the host understands.
func IsValidErrorCode(code int) bool {
	return code >= model.ErrorCodeNone && code <= model.ErrorCodeOpenURL
}

// ParseErrorCode converts the textual form of an error code. Non-numeric or
// out of range input yields (0, false).
func ParseErrorCode(raw string) (int, bool) {
	code, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !IsValidErrorCode(code) {
		return 0, false
	}
	return code, true
}
