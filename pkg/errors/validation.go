package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SourceExtension is the file extension the extractor understands natively.
// Other extensions are accepted but callers may want to warn about them.
const SourceExtension = ".py"

// ValidateInputPath validates a source file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory-like path (trailing separator)
func ValidateInputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "input path %q names a directory", path)
	}

	return nil
}

// ValidateOutputPath validates an explicit output path.
// An empty path is valid and means "derive from the input".
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// ValidateOutputSuffix validates the suffix appended to the input stem when
// deriving a default output name (e.g. "_structure.md").
func ValidateOutputSuffix(suffix string) error {
	if suffix == "" {
		return New(ErrCodeInvalidConfig, "output suffix cannot be empty")
	}
	if strings.ContainsAny(suffix, "/\\") {
		return New(ErrCodeInvalidConfig, "output suffix cannot contain path separators")
	}
	return nil
}

// IsSourceFile reports whether path has the natively supported extension.
func IsSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceExtension)
}
