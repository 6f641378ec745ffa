// Package pathmatch compiles include and exclude globs into reusable matchers
// over repo-relative, slash-separated paths.
//
// Patterns support `*` (within one segment), `**` (across segments) and `?`,
// plus the character classes and `{a,b}` alternation of doublestar. Matching is
// anchored to the whole path and case-sensitive. A trailing slash selects a
// directory and everything below it.
package pathmatch

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/dumpo/internal/types"
)

const (
	recursiveSuffix = "**"
	separator       = "/"
)

// Set is a compiled, ordered list of glob patterns.
type Set struct {
	label    string
	patterns []string
}

// Compile validates and normalizes patterns. label names the setting in errors.
func Compile(label string, patterns []string) (*Set, error) {
	compiled := make([]string, 0, len(patterns))
	for _, rawPattern := range patterns {
		normalized, normalizeErr := normalizePattern(rawPattern)
		if normalizeErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrConfig, label, normalizeErr)
		}
		if !doublestar.ValidatePattern(normalized) {
			return nil, fmt.Errorf("%w: %s: invalid glob pattern %q", types.ErrConfig, label, rawPattern)
		}
		compiled = append(compiled, normalized)
	}
	return &Set{label: label, patterns: compiled}, nil
}

func normalizePattern(rawPattern string) (string, error) {
	pattern := strings.TrimSpace(rawPattern)
	if pattern == "" {
		return "", fmt.Errorf("empty glob pattern")
	}
	pattern = strings.TrimPrefix(pattern, "./")
	pattern = strings.TrimLeft(pattern, separator)
	if pattern == "" {
		return "", fmt.Errorf("glob pattern %q matches no relative path", rawPattern)
	}
	if strings.HasSuffix(pattern, separator) {
		pattern += recursiveSuffix
	}
	return pattern, nil
}

// Len returns the number of compiled patterns.
func (set *Set) Len() int {
	if set == nil {
		return 0
	}
	return len(set.patterns)
}

// Patterns returns the normalized patterns in their original order.
func (set *Set) Patterns() []string {
	if set == nil {
		return nil
	}
	return append([]string(nil), set.patterns...)
}

// Matches reports whether relativePath matches at least one pattern.
// An empty set matches nothing.
func (set *Set) Matches(relativePath string) bool {
	if set == nil {
		return false
	}
	for _, pattern := range set.patterns {
		// patterns were validated in Compile, so Match cannot fail here
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
	}
	return false
}

// Matcher combines an include set and an exclude set.
type Matcher struct {
	include *Set
	exclude *Set
}

// NewMatcher compiles both pattern lists, failing on the first invalid pattern.
func NewMatcher(includePatterns, excludePatterns []string) (*Matcher, error) {
	include, includeErr := Compile("include", includePatterns)
	if includeErr != nil {
		return nil, includeErr
	}
	exclude, excludeErr := Compile("exclude", excludePatterns)
	if excludeErr != nil {
		return nil, excludeErr
	}
	return &Matcher{include: include, exclude: exclude}, nil
}

// Included reports whether the include globs admit relativePath.
// An empty include list admits every path.
func (matcher *Matcher) Included(relativePath string) bool {
	if matcher.include.Len() == 0 {
		return true
	}
	return matcher.include.Matches(relativePath)
}

// Excluded reports whether the exclude globs reject relativePath.
// An empty exclude list rejects nothing.
func (matcher *Matcher) Excluded(relativePath string) bool {
	return matcher.exclude.Matches(relativePath)
}

// Admits applies both lists; exclusion wins over inclusion.
func (matcher *Matcher) Admits(relativePath string) bool {
	return matcher.Included(relativePath) && !matcher.Excluded(relativePath)
}
