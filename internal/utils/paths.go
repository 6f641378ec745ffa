// Package utils contains general helper functions used across dumpo.
package utils

import "strings"

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes empty and duplicate patterns while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// JoinRelative appends name to a repo-relative directory path.
func JoinRelative(directory, name string) string {
	if directory == "" || directory == "." {
		return name
	}
	return directory + pathSegmentSeparator + name
}

// IsHiddenName reports whether a single path segment is a dotfile name.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// HasHiddenSegment reports whether any segment of a repo-relative path is hidden.
func HasHiddenSegment(relativePath string) bool {
	for _, segment := range strings.Split(relativePath, pathSegmentSeparator) {
		if IsHiddenName(segment) {
			return true
		}
	}
	return false
}

// BaseName returns the last segment of a repo-relative path.
func BaseName(relativePath string) string {
	if index := strings.LastIndex(relativePath, pathSegmentSeparator); index >= 0 {
		return relativePath[index+1:]
	}
	return relativePath
}
