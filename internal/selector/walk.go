// Package selector walks a repository root in a fixed order and loads the
// content of the files that survive glob and safety filtering.
package selector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/dumpo/internal/pathmatch"
	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

const directorySuffix = "/"

// Entry is one walked path: either a candidate file or a path already decided
// during the walk.
type Entry struct {
	Candidate types.CandidateFile
	Decision  *types.FileDecision
}

// Selection is the ordered result of a walk.
type Selection struct {
	Root    string
	Entries []Entry
}

// Candidates returns the number of entries that still need loading.
func (selection Selection) Candidates() int {
	count := 0
	for _, entry := range selection.Entries {
		if entry.IsCandidate() {
			count++
		}
	}
	return count
}

// IsCandidate reports whether the entry still needs loading.
func (entry Entry) IsCandidate() bool {
	return entry.Decision == nil
}

type walker struct {
	root    string
	config  types.EffectiveConfig
	matcher *pathmatch.Matcher
	entries []Entry
	seen    map[string]struct{}
}

// Walk traverses root depth-first. Entries of each directory are visited in
// byte-wise name order. Symbolic links to directories are not followed; a
// symbolic link to a file yields a candidate under the link's own path.
func Walk(root string, config types.EffectiveConfig, matcher *pathmatch.Matcher) (Selection, error) {
	if matcher == nil {
		matcher = &pathmatch.Matcher{}
	}
	info, statErr := os.Stat(root)
	if statErr != nil {
		return Selection{}, fmt.Errorf("%w: stat root %s: %w", types.ErrIO, root, statErr)
	}
	if !info.IsDir() {
		return Selection{}, fmt.Errorf("%w: root %s is not a directory", types.ErrIO, root)
	}

	walkerState := &walker{root: root, config: config, matcher: matcher, seen: map[string]struct{}{}}
	directoryEntries, readErr := os.ReadDir(root)
	if readErr != nil {
		return Selection{}, fmt.Errorf("%w: read root %s: %w", types.ErrIO, root, readErr)
	}
	walkerState.visitEntries(root, ".", directoryEntries)
	return Selection{Root: root, Entries: walkerState.entries}, nil
}

func (walkerState *walker) walkDirectory(absolutePath, relativePath string) {
	directoryEntries, readErr := os.ReadDir(absolutePath)
	if readErr != nil {
		walkerState.skip(relativePath+directorySuffix, types.DecisionSkippedSafety, types.ReasonUnreadable, 0)
		return
	}
	walkerState.visitEntries(absolutePath, relativePath, directoryEntries)
}

func (walkerState *walker) visitEntries(absoluteDirectory, relativeDirectory string, directoryEntries []fs.DirEntry) {
	for _, directoryEntry := range directoryEntries {
		name := directoryEntry.Name()
		absolutePath := filepath.Join(absoluteDirectory, name)
		relativePath := utils.JoinRelative(relativeDirectory, name)

		switch entryType := directoryEntry.Type(); {
		case entryType&fs.ModeSymlink != 0:
			walkerState.visitSymlink(absolutePath, relativePath)
		case directoryEntry.IsDir():
			walkerState.visitDirectory(absolutePath, relativePath, name)
		case entryType.IsRegular():
			info, infoErr := directoryEntry.Info()
			if infoErr != nil {
				walkerState.skip(relativePath, types.DecisionSkippedSafety, types.ReasonUnreadable, 0)
				continue
			}
			walkerState.visitFile(absolutePath, relativePath, info.Size())
		}
	}
}

func (walkerState *walker) visitDirectory(absolutePath, relativePath, name string) {
	if !walkerState.config.IncludeHidden && utils.IsHiddenName(name) {
		walkerState.skip(relativePath+directorySuffix, types.DecisionSkippedSafety, types.ReasonHidden, 0)
		return
	}
	if walkerState.config.DefaultExcludes && isPrunedDirectory(name) {
		walkerState.skip(relativePath+directorySuffix, types.DecisionSkippedFilter, types.ReasonDefaultExcluded, 0)
		return
	}
	walkerState.walkDirectory(absolutePath, relativePath)
}

func (walkerState *walker) visitSymlink(absolutePath, relativePath string) {
	targetInfo, statErr := os.Stat(absolutePath)
	switch {
	case statErr != nil:
		walkerState.skip(relativePath, types.DecisionSkippedSafety, types.ReasonUnreadable, 0)
	case targetInfo.IsDir():
		walkerState.skip(relativePath+directorySuffix, types.DecisionSkippedSafety, types.ReasonSymlinkDirectory, 0)
	case targetInfo.Mode().IsRegular():
		walkerState.visitFile(absolutePath, relativePath, targetInfo.Size())
	}
}

func (walkerState *walker) visitFile(absolutePath, relativePath string, size int64) {
	if walkerState.config.DefaultExcludes && isExcludedFileName(utils.BaseName(relativePath)) {
		walkerState.skip(relativePath, types.DecisionSkippedFilter, types.ReasonDefaultExcluded, size)
		return
	}
	if !walkerState.matcher.Admits(relativePath) {
		walkerState.skip(relativePath, types.DecisionSkippedFilter, types.ReasonExcludedGlob, size)
		return
	}
	if walkerState.markSeen(relativePath) {
		walkerState.entries = append(walkerState.entries, Entry{Candidate: types.CandidateFile{
			RelativePath: relativePath,
			AbsolutePath: absolutePath,
			SizeBytes:    size,
		}})
	}
}

func (walkerState *walker) skip(relativePath string, kind types.DecisionKind, reason types.Reason, size int64) {
	if !walkerState.markSeen(relativePath) {
		return
	}
	walkerState.entries = append(walkerState.entries, Entry{Decision: &types.FileDecision{
		Path:         relativePath,
		Kind:         kind,
		Reason:       reason,
		OriginalSize: size,
	}})
}

// markSeen returns false when relativePath was already recorded.
func (walkerState *walker) markSeen(relativePath string) bool {
	if _, exists := walkerState.seen[relativePath]; exists {
		return false
	}
	walkerState.seen[relativePath] = struct{}{}
	return true
}
