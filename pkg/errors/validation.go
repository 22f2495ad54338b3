package errors

import (
	"regexp"
	"unicode"
)

// identifierRegex matches identifiers: a letter or underscore followed by
// letters, digits or underscores.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is a syntactically valid identifier.
// Region tags must satisfy it.
func ValidIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// ValidateRegion validates a region tag.
func ValidateRegion(region string) error {
	if !ValidIdentifier(region) {
		return New(ErrCodeInvalidRegion, "invalid region %q (should be a valid identifier)", region)
	}
	return nil
}

// ValidateModuleName validates a module name.
//
// Module names are free-form keys but must be non-empty, at most 256
// characters, and free of control characters so they survive YAML and DOT
// serialization.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModule, "module name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidModule, "module name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModule, "module name %q contains control characters", name)
		}
	}

	return nil
}
