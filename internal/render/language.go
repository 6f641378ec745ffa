package render

import (
	"strings"

	"github.com/temirov/dumpo/internal/utils"
)

var languageHints = map[string]string{
	"rs":   "rust",
	"go":   "go",
	"toml": "toml",
	"md":   "markdown",
	"yml":  "yaml",
	"yaml": "yaml",
	"json": "json",
	"py":   "python",
	"sh":   "bash",
	"js":   "javascript",
	"ts":   "typescript",
	"html": "html",
	"css":  "css",
	"sql":  "sql",
	"c":    "c",
	"h":    "c",
	"java": "java",
}

// LanguageHint returns the code fence info string for relativePath, or an
// empty string when the extension is unknown.
func LanguageHint(relativePath string) string {
	name := utils.BaseName(relativePath)
	dotIndex := strings.LastIndex(name, ".")
	if dotIndex <= 0 {
		return ""
	}
	return languageHints[strings.ToLower(name[dotIndex+1:])]
}
