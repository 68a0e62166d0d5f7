package errors

import (
	"slices"
	"strings"
	"unicode"
)

// LayoutAlgorithms lists the Graphviz engines accepted for node placement.
var LayoutAlgorithms = []string{"dot", "neato", "fdp", "sfdp", "twopi", "circo"}

// ValidateLayoutAlgorithm checks that name is one of [LayoutAlgorithms].
// Names are case-sensitive, matching the Graphviz engine names.
func ValidateLayoutAlgorithm(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayout, "layout algorithm cannot be empty")
	}
	if !slices.Contains(LayoutAlgorithms, name) {
		return New(ErrCodeInvalidLayout, "unknown layout algorithm %q (must be one of: %s)",
			name, strings.Join(LayoutAlgorithms, ", "))
	}
	return nil
}

// ValidateFileName validates a single path component used to address output
// files, such as a frame name requested from the review server.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 255 characters
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "file name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "file name cannot be hidden or relative: %q", name)
	}

	return nil
}

// ValidateOutputPath validates the base output directory of a run.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}
