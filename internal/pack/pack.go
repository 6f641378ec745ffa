// Package pack runs the full selection pipeline for one repository root:
// walk, load, budget and render.
package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/dumpo/internal/budget"
	"github.com/temirov/dumpo/internal/pathmatch"
	"github.com/temirov/dumpo/internal/render"
	"github.com/temirov/dumpo/internal/safety"
	"github.com/temirov/dumpo/internal/selector"
	"github.com/temirov/dumpo/internal/types"
)

const (
	walkLogMessage     = "walk complete"
	decisionLogMessage = "decision"
	summaryLogMessage  = "pack summary"
)

// Options carry the collaborators and rendering switches of a run.
type Options struct {
	ListSkipped bool
	Logger      *zap.Logger
}

// Result is the outcome of a successful run.
type Result struct {
	Root      string
	Text      string
	Decisions []types.FileDecision
	Summary   types.RunSummary
}

// Run packs root according to config. Configuration errors are reported
// before the filesystem is touched; per-file problems become skip decisions.
func Run(ctx context.Context, root string, config types.EffectiveConfig, options Options) (Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if validationErr := config.Validate(); validationErr != nil {
		return Result{}, validationErr
	}
	matcher, matcherErr := pathmatch.NewMatcher(config.Include, config.Exclude)
	if matcherErr != nil {
		return Result{}, matcherErr
	}
	canonicalRoot, rootErr := CanonicalRoot(root)
	if rootErr != nil {
		return Result{}, rootErr
	}

	selection, walkErr := selector.Walk(canonicalRoot, config, matcher)
	if walkErr != nil {
		return Result{}, walkErr
	}
	logger.Debug(walkLogMessage,
		zap.String("root", canonicalRoot),
		zap.Int("entries", len(selection.Entries)),
		zap.Int("candidates", selection.Candidates()),
	)
	loaded, loadErr := selector.Load(ctx, selection, config, safety.NewFilter(config))
	if loadErr != nil {
		return Result{}, loadErr
	}
	decisions, summary := budget.Enforce(loaded, config)
	logDecisions(logger, decisions, summary)

	text := render.Render(canonicalRoot, decisions, summary, render.Options{ListSkipped: options.ListSkipped})
	return Result{Root: canonicalRoot, Text: text, Decisions: decisions, Summary: summary}, nil
}

// CanonicalRoot resolves root to an absolute, symlink-free directory path.
func CanonicalRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	absoluteRoot, absErr := filepath.Abs(root)
	if absErr != nil {
		return "", fmt.Errorf("%w: resolve root %s: %w", types.ErrIO, root, absErr)
	}
	resolvedRoot, resolveErr := filepath.EvalSymlinks(absoluteRoot)
	if resolveErr != nil {
		return "", fmt.Errorf("%w: resolve root %s: %w", types.ErrIO, root, resolveErr)
	}
	info, statErr := os.Stat(resolvedRoot)
	if statErr != nil {
		return "", fmt.Errorf("%w: stat root %s: %w", types.ErrIO, root, statErr)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: root %s is not a directory", types.ErrIO, root)
	}
	return resolvedRoot, nil
}

func logDecisions(logger *zap.Logger, decisions []types.FileDecision, summary types.RunSummary) {
	for _, decision := range decisions {
		logger.Debug(decisionLogMessage,
			zap.String("path", decision.Path),
			zap.String("decision", string(decision.Kind)),
			zap.String("reason", string(decision.Reason)),
			zap.Int64("bytes", decision.ShownBytes),
		)
	}
	logger.Debug(summaryLogMessage,
		zap.Int("included", summary.Included),
		zap.Int("truncated", summary.Truncated),
		zap.Int("skipped", summary.SkippedTotal()),
		zap.Int64("bytes", summary.TotalBytes),
	)
}
