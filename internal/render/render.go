// Package render formats the decisions of a pack run into one paste-ready
// Markdown text blob.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

const (
	packTitle           = "# dumpo pack"
	rootLineFormat      = "- root: %s"
	fileHeadingFormat   = "## %s"
	summaryHeading      = "## dumpo summary"
	truncationFormat    = "(truncated: showing %d of %d bytes; cut on a byte boundary, multi-byte characters may be split)"
	minimumFenceLength  = 3
	fenceCharacter      = "`"
	newline             = "\n"
	skippedReasonFormat = "- skipped (%s): %d"
	skippedPathFormat   = "  - %s"
)

// Options control optional parts of the rendered text.
type Options struct {
	ListSkipped bool
}

// Render produces the pack text for root. Only included and truncated
// decisions get a content block; skipped decisions appear in the footer.
func Render(root string, decisions []types.FileDecision, summary types.RunSummary, options Options) string {
	var builder strings.Builder
	builder.WriteString(packTitle + newline)
	fmt.Fprintf(&builder, rootLineFormat+newline, root)

	for _, decision := range decisions {
		if !decision.IsRendered() {
			continue
		}
		builder.WriteString(newline)
		writeFileBlock(&builder, decision)
	}

	builder.WriteString(newline)
	writeSummary(&builder, decisions, summary, options)
	return builder.String()
}

func writeFileBlock(builder *strings.Builder, decision types.FileDecision) {
	fence := fenceFor(decision.Content)
	fmt.Fprintf(builder, fileHeadingFormat+newline, decision.Path)
	builder.WriteString(newline)
	builder.WriteString(fence + LanguageHint(decision.Path) + newline)
	builder.Write(decision.Content)
	if len(decision.Content) > 0 && !bytes.HasSuffix(decision.Content, []byte(newline)) {
		builder.WriteString(newline)
	}
	builder.WriteString(fence + newline)
	if decision.Kind == types.DecisionTruncated {
		fmt.Fprintf(builder, truncationFormat+newline, decision.ShownBytes, decision.OriginalSize)
	}
}

// fenceFor returns a backtick run longer than any run inside content.
func fenceFor(content []byte) string {
	longestRun, currentRun := 0, 0
	for _, character := range content {
		if character == '`' {
			currentRun++
			longestRun = max(longestRun, currentRun)
			continue
		}
		currentRun = 0
	}
	return strings.Repeat(fenceCharacter, max(minimumFenceLength, longestRun+1))
}

func writeSummary(builder *strings.Builder, decisions []types.FileDecision, summary types.RunSummary, options Options) {
	builder.WriteString(summaryHeading + newline)
	builder.WriteString(newline)
	fmt.Fprintf(builder, "- included: %d\n", summary.Included)
	fmt.Fprintf(builder, "- truncated: %d\n", summary.Truncated)
	fmt.Fprintf(builder, "- skipped: %d\n", summary.SkippedTotal())
	fmt.Fprintf(builder, "- content bytes: %d (%s)\n", summary.TotalBytes, utils.FormatByteSize(summary.TotalBytes))

	skippedByReason := groupSkipped(decisions)
	for _, reason := range sortedReasons(summary.Skipped) {
		fmt.Fprintf(builder, skippedReasonFormat+newline, reason, summary.Skipped[reason])
		if !options.ListSkipped {
			continue
		}
		for _, path := range skippedByReason[reason] {
			fmt.Fprintf(builder, skippedPathFormat+newline, path)
		}
	}
}

func groupSkipped(decisions []types.FileDecision) map[types.Reason][]string {
	grouped := map[types.Reason][]string{}
	for _, decision := range decisions {
		if decision.IsSkipped() {
			grouped[decision.Reason] = append(grouped[decision.Reason], decision.Path)
		}
	}
	return grouped
}

func sortedReasons(counts map[types.Reason]int) []types.Reason {
	reasons := make([]types.Reason, 0, len(counts))
	for reason, count := range counts {
		if count > 0 {
			reasons = append(reasons, reason)
		}
	}
	sort.Slice(reasons, func(left, right int) bool { return reasons[left] < reasons[right] })
	return reasons
}
