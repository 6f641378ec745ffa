package selector

import "github.com/temirov/dumpo/internal/utils"

var (
	// prunedDirectoryNames are never descended into while default excludes are on.
	prunedDirectoryNames = map[string]struct{}{
		utils.GitDirectoryName: {},
		"target":               {},
		"node_modules":         {},
	}
	// excludedFileNames are skipped at any depth while default excludes are on.
	excludedFileNames = map[string]struct{}{
		"LICENSE":           {},
		"Makefile":          {},
		"Cargo.lock":        {},
		utils.DebugFileName: {},
	}
)

func isPrunedDirectory(name string) bool {
	_, pruned := prunedDirectoryNames[name]
	return pruned
}

func isExcludedFileName(name string) bool {
	_, excluded := excludedFileNames[name]
	return excluded
}
