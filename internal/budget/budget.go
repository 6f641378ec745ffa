// Package budget applies the per-file and total byte budgets to loaded files
// in traversal order and produces the final decision list of a run.
package budget

import (
	"github.com/temirov/dumpo/internal/selector"
	"github.com/temirov/dumpo/internal/types"
)

// Enforce walks entries in order and decides, for each allowed file, how many
// bytes are shown. Earlier files consume the total budget first. Once the
// total is spent every later allowed file is skipped, even an empty one.
func Enforce(entries []selector.Loaded, config types.EffectiveConfig) ([]types.FileDecision, types.RunSummary) {
	decisions := make([]types.FileDecision, 0, len(entries))
	remaining := config.MaxTotalBytes
	exhausted := remaining <= 0

	for _, entry := range entries {
		if entry.Decision != nil {
			decisions = append(decisions, *entry.Decision)
			continue
		}
		if !entry.Verdict.Allowed {
			decisions = append(decisions, types.FileDecision{
				Path:         entry.Candidate.RelativePath,
				Kind:         types.DecisionSkippedSafety,
				Reason:       entry.Verdict.Reason,
				OriginalSize: entry.Candidate.SizeBytes,
			})
			continue
		}

		size := int64(len(entry.Content))
		if exhausted {
			decisions = append(decisions, types.FileDecision{
				Path:         entry.Candidate.RelativePath,
				Kind:         types.DecisionSkippedBudget,
				Reason:       types.ReasonTotalBudgetExhausted,
				OriginalSize: size,
			})
			continue
		}

		decision := decide(entry.Candidate.RelativePath, entry.Content, config.MaxFileBytes, remaining)
		decisions = append(decisions, decision)
		remaining -= decision.ShownBytes
		if remaining <= 0 {
			exhausted = true
		}
	}
	return decisions, types.Summarize(decisions)
}

func decide(relativePath string, content []byte, maxFileBytes, remaining int64) types.FileDecision {
	size := int64(len(content))
	shown := min(size, maxFileBytes, remaining)
	decision := types.FileDecision{
		Path:         relativePath,
		Kind:         types.DecisionIncluded,
		Content:      content[:shown],
		ShownBytes:   shown,
		OriginalSize: size,
	}
	if shown == size {
		return decision
	}
	decision.Kind = types.DecisionTruncated
	if remaining < maxFileBytes {
		decision.Reason = types.ReasonTooLargeGlobalBudget
	} else {
		decision.Reason = types.ReasonPerFileTruncated
	}
	return decision
}
