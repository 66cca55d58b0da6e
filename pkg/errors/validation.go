package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds flavor and type names.
const maxNameLength = 128

// ValidateName validates a flavor or element type name.
//
// Names become SVG attribute values and TOML keys, so the rules are
// conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No quotes or angle brackets
//   - Maximum length of 128 characters
//
// The wildcard "*" is a valid name.
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s name %q contains whitespace or control characters", kind, name)
		}
	}

	if strings.ContainsAny(name, `"'<>&`) {
		return New(ErrCodeInvalidInput, "%s name %q contains markup characters", kind, name)
	}

	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
