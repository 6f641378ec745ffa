// Package safety decides which files are never included regardless of user
// globs: hidden paths, binary files, credential stores and files too large to
// scan. A denial here is final.
package safety

import (
	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

// Verdict is the outcome of a safety evaluation.
type Verdict struct {
	Allowed bool
	Reason  types.Reason
}

// Allow is the verdict for a file that passed every check.
var Allow = Verdict{Allowed: true}

// Deny returns a denying verdict carrying reason.
func Deny(reason types.Reason) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}

// Filter evaluates candidates against the safety checks.
type Filter struct {
	includeHidden bool
	maxScanBytes  int64
}

// NewFilter builds a Filter from the effective configuration.
func NewFilter(config types.EffectiveConfig) *Filter {
	maxScanBytes := config.MaxScanBytes
	if maxScanBytes <= 0 {
		maxScanBytes = types.DefaultMaxScanBytes
	}
	return &Filter{includeHidden: config.IncludeHidden, maxScanBytes: maxScanBytes}
}

// EvaluatePath runs the checks that need no file content: hidden segments,
// binary extensions, credential file names and the scan size ceiling. Callers
// skip reading a file this denies.
func (filter *Filter) EvaluatePath(candidate types.CandidateFile) Verdict {
	if !filter.includeHidden && utils.HasHiddenSegment(candidate.RelativePath) {
		return Deny(types.ReasonHidden)
	}
	if HasBinaryExtension(candidate.RelativePath) {
		return Deny(types.ReasonBinary)
	}
	if HasSecretName(candidate.RelativePath) {
		return Deny(types.ReasonSecretPattern)
	}
	if candidate.SizeBytes > filter.maxScanBytes {
		return Deny(types.ReasonOversized)
	}
	return Allow
}

// Evaluate runs every check in order and stops at the first denial: hidden,
// binary extension, secret name, oversized, binary content, secret content.
// Empty files pass.
func (filter *Filter) Evaluate(candidate types.CandidateFile, content []byte) Verdict {
	if verdict := filter.EvaluatePath(candidate); !verdict.Allowed {
		return verdict
	}
	if LooksBinary(content) {
		return Deny(types.ReasonBinary)
	}
	if ContainsSecret(content) {
		return Deny(types.ReasonSecretPattern)
	}
	return Allow
}
