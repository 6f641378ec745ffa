package selector

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/dumpo/internal/safety"
	"github.com/temirov/dumpo/internal/types"
)

// Loaded is a walked entry after content loading and safety evaluation.
// Decision is set for entries decided during the walk; otherwise Verdict
// holds the safety outcome and Content the file bytes when allowed.
type Loaded struct {
	Candidate types.CandidateFile
	Content   []byte
	Verdict   safety.Verdict
	Decision  *types.FileDecision
}

// Path returns the repo-relative path of the loaded entry.
func (loaded Loaded) Path() string {
	if loaded.Decision != nil {
		return loaded.Decision.Path
	}
	return loaded.Candidate.RelativePath
}

// Load reads every candidate of selection with at most config.Workers
// concurrent readers and evaluates it with filter. Results keep the order of
// selection.Entries regardless of the worker count. Per-file read failures
// become unreadable verdicts; only cancellation of ctx fails the load.
func Load(ctx context.Context, selection Selection, config types.EffectiveConfig, filter *safety.Filter) ([]Loaded, error) {
	if filter == nil {
		filter = safety.NewFilter(config)
	}
	results := make([]Loaded, len(selection.Entries))
	group, loadCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerLimit(config.Workers))

	for index, entry := range selection.Entries {
		if !entry.IsCandidate() {
			results[index] = Loaded{Decision: entry.Decision}
			continue
		}
		if loadCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if contextErr := loadCtx.Err(); contextErr != nil {
				return contextErr
			}
			results[index] = loadCandidate(entry.Candidate, filter, config.MaxScanBytes)
			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return nil, waitErr
	}
	if contextErr := ctx.Err(); contextErr != nil {
		return nil, contextErr
	}
	return results, nil
}

// workerLimit maps a zero worker count to one reader per available CPU.
func workerLimit(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

func loadCandidate(candidate types.CandidateFile, filter *safety.Filter, maxScanBytes int64) Loaded {
	if verdict := filter.EvaluatePath(candidate); !verdict.Allowed {
		return Loaded{Candidate: candidate, Verdict: verdict}
	}
	content, readErr := readBounded(candidate.AbsolutePath, maxScanBytes)
	switch {
	case errors.Is(readErr, errScanLimit):
		candidate.SizeBytes = int64(len(content))
		return Loaded{Candidate: candidate, Verdict: safety.Deny(types.ReasonOversized)}
	case readErr != nil:
		return Loaded{Candidate: candidate, Verdict: safety.Deny(types.ReasonUnreadable)}
	}
	// the file may have changed size since the walk
	candidate.SizeBytes = int64(len(content))
	verdict := filter.Evaluate(candidate, content)
	if !verdict.Allowed {
		return Loaded{Candidate: candidate, Verdict: verdict}
	}
	return Loaded{Candidate: candidate, Content: content, Verdict: verdict}
}

var errScanLimit = errors.New("file grew beyond the scan limit")

func readBounded(path string, limit int64) ([]byte, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer file.Close()
	if limit <= 0 {
		limit = types.DefaultMaxScanBytes
	}
	content, readErr := io.ReadAll(io.LimitReader(file, limit+1))
	if readErr != nil {
		return nil, readErr
	}
	if int64(len(content)) > limit {
		return content, errScanLimit
	}
	return content, nil
}
