package types

import (
	"fmt"
	"unicode/utf8"
)

// ValidatePathParam rejects values that cannot be placed safely in a single
// URL path segment. Escaping handles reserved characters; the dot segments
// are rejected because servers normalise them away.
func ValidatePathParam(name, value string) error {
	if value == "" {
		return fmt.Errorf("path parameter %q is empty", name)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("path parameter %q is not valid UTF-8", name)
	}
	if value == "." || value == ".." {
		return fmt.Errorf("path parameter %q cannot be a dot segment", name)
	}
	return nil
}

// ValidateQueryValue rejects query values that are not valid UTF-8.
func ValidateQueryValue(name, value string) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("query parameter %q is not valid UTF-8", name)
	}
	return nil
}
