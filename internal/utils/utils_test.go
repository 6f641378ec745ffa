package utils_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/temirov/dumpo/internal/utils"
)

func TestDeduplicatePatterns(t *testing.T) {
	result := utils.DeduplicatePatterns([]string{"*.go", " ", "docs/", "*.go", " docs/ ", "**/*.md"})
	expected := []string{"*.go", "docs/", "**/*.md"}
	if len(result) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, result)
	}
	for index := range expected {
		if result[index] != expected[index] {
			t.Fatalf("expected %v, got %v", expected, result)
		}
	}
}

func TestHasHiddenSegment(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "plain file", path: "README.md", expected: false},
		{name: "hidden file", path: ".env", expected: true},
		{name: "hidden directory", path: ".git/config", expected: true},
		{name: "nested hidden directory", path: "src/.cache/entry.txt", expected: true},
		{name: "dot inside name", path: "src/main.test.go", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := utils.HasHiddenSegment(testCase.path); result != testCase.expected {
				t.Fatalf("HasHiddenSegment(%q) = %t, expected %t", testCase.path, result, testCase.expected)
			}
		})
	}
}

func TestJoinRelativeAndBaseName(t *testing.T) {
	if joined := utils.JoinRelative(".", "a.txt"); joined != "a.txt" {
		t.Fatalf("expected a.txt, got %s", joined)
	}
	joined := utils.JoinRelative("src/pkg", "file.go")
	if joined != "src/pkg/file.go" {
		t.Fatalf("expected src/pkg/file.go, got %s", joined)
	}
	if base := utils.BaseName(joined); base != "file.go" {
		t.Fatalf("expected file.go, got %s", base)
	}
}

func TestFormatByteSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0 B"},
		{name: "zero", bytes: 0, expected: "0 B"},
		{name: "bytes", bytes: 512, expected: "512 B"},
		{name: "one kibibyte", bytes: 1024, expected: "1 KiB"},
		{name: "fractional", bytes: 20000, expected: "19.5 KiB"},
		{name: "mebibytes", bytes: 4 << 20, expected: "4 MiB"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := utils.FormatByteSize(testCase.bytes); result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestDiagnosticLoggerHonorsVerbosity(t *testing.T) {
	var quiet bytes.Buffer
	utils.NewDiagnosticLogger(&quiet, false).Debug("hidden entry")
	if quiet.Len() != 0 {
		t.Fatalf("expected no debug output, got %q", quiet.String())
	}

	var verbose bytes.Buffer
	utils.NewDiagnosticLogger(&verbose, true).Debug("visible entry")
	if !strings.Contains(verbose.String(), "visible entry") {
		t.Fatalf("expected debug output, got %q", verbose.String())
	}
}
