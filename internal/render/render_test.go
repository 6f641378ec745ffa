package render

import (
	"strings"
	"testing"

	"github.com/temirov/dumpo/internal/types"
)

func sampleDecisions() []types.FileDecision {
	return []types.FileDecision{
		{Path: ".git/", Kind: types.DecisionSkippedSafety, Reason: types.ReasonHidden},
		{Path: "a.txt", Kind: types.DecisionIncluded, Content: []byte("hello\n"), ShownBytes: 6, OriginalSize: 6},
		{Path: "b.rs", Kind: types.DecisionTruncated, Reason: types.ReasonPerFileTruncated, Content: []byte("fn"), ShownBytes: 2, OriginalSize: 10},
		{Path: "c.png", Kind: types.DecisionSkippedSafety, Reason: types.ReasonBinary},
	}
}

func TestRenderLayout(testingHandle *testing.T) {
	decisions := sampleDecisions()
	rendered := Render("/repo", decisions, types.Summarize(decisions), Options{ListSkipped: true})
	expected := strings.Join([]string{
		"# dumpo pack",
		"- root: /repo",
		"",
		"## a.txt",
		"",
		"```",
		"hello",
		"```",
		"",
		"## b.rs",
		"",
		"```rust",
		"fn",
		"```",
		"(truncated: showing 2 of 10 bytes; cut on a byte boundary, multi-byte characters may be split)",
		"",
		"## dumpo summary",
		"",
		"- included: 1",
		"- truncated: 1",
		"- skipped: 2",
		"- content bytes: 8 (8 B)",
		"- skipped (binary): 1",
		"  - c.png",
		"- skipped (hidden): 1",
		"  - .git/",
		"",
	}, "\n")
	if rendered != expected {
		testingHandle.Fatalf("unexpected rendering:\n%s\nwant:\n%s", rendered, expected)
	}
}

func TestRenderWithoutSkippedPaths(testingHandle *testing.T) {
	decisions := sampleDecisions()
	rendered := Render("/repo", decisions, types.Summarize(decisions), Options{})
	if strings.Contains(rendered, "  - c.png") {
		testingHandle.Fatalf("skipped paths should be omitted:\n%s", rendered)
	}
	if !strings.Contains(rendered, "- skipped (binary): 1\n") {
		testingHandle.Fatalf("reason counts should remain:\n%s", rendered)
	}
	if !strings.HasSuffix(rendered, "\n") {
		testingHandle.Fatalf("output must end with a newline")
	}
}

func TestFenceOutgrowsContentBackticks(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "plain", content: "text", expected: "```"},
		{name: "inline code", content: "use `x`", expected: "```"},
		{name: "nested fence", content: "```go\nx\n```", expected: "````"},
		{name: "long run", content: "``````", expected: "```````"},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			if actual := fenceFor([]byte(testCase.content)); actual != testCase.expected {
				subTest.Fatalf("expected fence %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestRenderEmptyFile(testingHandle *testing.T) {
	decisions := []types.FileDecision{{Path: "empty.go", Kind: types.DecisionIncluded}}
	rendered := Render("/repo", decisions, types.Summarize(decisions), Options{})
	if !strings.Contains(rendered, "## empty.go\n\n```go\n```\n") {
		testingHandle.Fatalf("empty file should render an empty fence:\n%s", rendered)
	}
}

func TestLanguageHint(testingHandle *testing.T) {
	testCases := map[string]string{
		"src/main.rs":  "rust",
		"README.MD":    "markdown",
		"config.yml":   "yaml",
		"Dockerfile":   "",
		".gitignore":   "",
		"dir.d/script": "",
		"a/b/tool.sh":  "bash",
	}
	for path, expected := range testCases {
		if actual := LanguageHint(path); actual != expected {
			testingHandle.Fatalf("%s: expected %q, got %q", path, expected, actual)
		}
	}
}
