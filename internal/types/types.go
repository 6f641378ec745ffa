// Package types defines every cross‑package data structure used by the dumpo CLI.
package types

import "fmt"

const (
	CommandPack = "pack"
	CommandInit = "init"

	// DefaultMaxFileBytes caps the bytes shown for a single file.
	DefaultMaxFileBytes int64 = 20000
	// DefaultMaxTotalBytes caps the content bytes of a whole pack.
	DefaultMaxTotalBytes int64 = 400000
	// DefaultMaxScanBytes is the size above which a file is never read.
	DefaultMaxScanBytes int64 = 4 << 20
)

// EffectiveConfig is the fully resolved configuration consumed by one pack run.
type EffectiveConfig struct {
	MaxFileBytes    int64
	MaxTotalBytes   int64
	MaxScanBytes    int64
	IncludeHidden   bool
	DefaultExcludes bool
	Include         []string
	Exclude         []string
	Workers         int
}

// DefaultEffectiveConfig returns the configuration assumed when no file or flag overrides it.
func DefaultEffectiveConfig() EffectiveConfig {
	return EffectiveConfig{
		MaxFileBytes:    DefaultMaxFileBytes,
		MaxTotalBytes:   DefaultMaxTotalBytes,
		MaxScanBytes:    DefaultMaxScanBytes,
		IncludeHidden:   false,
		DefaultExcludes: true,
	}
}

// Validate reports a ConfigError when a budget is not positive.
func (config EffectiveConfig) Validate() error {
	if config.MaxFileBytes <= 0 {
		return fmt.Errorf("%w: max_file_bytes must be positive, got %d", ErrConfig, config.MaxFileBytes)
	}
	if config.MaxTotalBytes <= 0 {
		return fmt.Errorf("%w: max_total_bytes must be positive, got %d", ErrConfig, config.MaxTotalBytes)
	}
	if config.MaxScanBytes <= 0 {
		return fmt.Errorf("%w: max_scan_bytes must be positive, got %d", ErrConfig, config.MaxScanBytes)
	}
	if config.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrConfig, config.Workers)
	}
	return nil
}

// CandidateFile is one eligible file produced by the selector.
type CandidateFile struct {
	RelativePath string
	AbsolutePath string
	SizeBytes    int64
}

// DecisionKind tags the variant of a FileDecision.
type DecisionKind string

const (
	DecisionIncluded      DecisionKind = "included"
	DecisionTruncated     DecisionKind = "truncated"
	DecisionSkippedSafety DecisionKind = "skipped-safety"
	DecisionSkippedBudget DecisionKind = "skipped-budget"
	DecisionSkippedFilter DecisionKind = "skipped-filter"
)

// Reason is an enumerated explanation attached to a decision.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonBinary               Reason = "binary"
	ReasonSecretPattern        Reason = "secret-pattern"
	ReasonHidden               Reason = "hidden"
	ReasonExcludedGlob         Reason = "excluded-glob"
	ReasonDefaultExcluded      Reason = "default-excluded"
	ReasonUnreadable           Reason = "unreadable"
	ReasonOversized            Reason = "oversized"
	ReasonSymlinkDirectory     Reason = "symlink-directory"
	ReasonPerFileTruncated     Reason = "per-file-truncated"
	ReasonTooLargeGlobalBudget Reason = "too-large-global-budget"
	ReasonTotalBudgetExhausted Reason = "total-budget-exhausted"
)

// FileDecision records what happened to one path during a run.
// Content holds the bytes to render for included and truncated files only.
type FileDecision struct {
	Path         string
	Kind         DecisionKind
	Reason       Reason
	Content      []byte
	ShownBytes   int64
	OriginalSize int64
}

// IsRendered reports whether the decision produces a content block.
func (decision FileDecision) IsRendered() bool {
	return decision.Kind == DecisionIncluded || decision.Kind == DecisionTruncated
}

// IsSkipped reports whether the decision drops the path from the output.
func (decision FileDecision) IsSkipped() bool {
	return !decision.IsRendered()
}

// RunSummary aggregates the decisions of a run.
type RunSummary struct {
	Included   int
	Truncated  int
	Skipped    map[Reason]int
	TotalBytes int64
}

// SkippedTotal returns the number of skipped paths across every reason.
func (summary RunSummary) SkippedTotal() int {
	total := 0
	for _, count := range summary.Skipped {
		total += count
	}
	return total
}

// Summarize builds a RunSummary from an ordered decision list.
func Summarize(decisions []FileDecision) RunSummary {
	summary := RunSummary{Skipped: map[Reason]int{}}
	for _, decision := range decisions {
		switch decision.Kind {
		case DecisionIncluded:
			summary.Included++
			summary.TotalBytes += decision.ShownBytes
		case DecisionTruncated:
			summary.Truncated++
			summary.TotalBytes += decision.ShownBytes
		default:
			summary.Skipped[decision.Reason]++
		}
	}
	return summary
}
