// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/scholar-engine/internal/sources"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

// SourceStatus is the terminal state of one adapter call.
type SourceStatus string

const (
	// StatusSuccess means the source returned at least one candidate record.
	StatusSuccess SourceStatus = "success"
	// StatusEmpty means the source answered but has no match for the query.
	StatusEmpty SourceStatus = "empty"
	// StatusTimedOut means the call was abandoned at the fan-out deadline.
	StatusTimedOut SourceStatus = "timed_out"
	// StatusFailed means the source errored (network, rate limit, bad payload).
	StatusFailed SourceStatus = "failed"
)

// SourceOutcome records how one adapter call ended. Records is non-empty
// only for StatusSuccess; Err is set only for StatusTimedOut and StatusFailed.
type SourceOutcome struct {
	Status  SourceStatus
	Records []types.CandidateRecord
	Err     error
}

const defaultDeadline = 15 * time.Second

// fanOut issues every adapter call concurrently and waits until all calls
// reach a terminal state or the deadline elapses, whichever comes first.
// Calls still running at the deadline are reported as timed out and their
// eventual results are discarded. A source failing never aborts the pass;
// failures only shrink the evidence available downstream. Warnings for
// failed and timed-out sources go to w.
func fanOut(ctx context.Context, query types.SearchQuery, adapters []sources.Adapter, cfg types.ResolveConfig, w io.Writer) map[types.SourceID]SourceOutcome {
	deadline := cfg.Deadline
	if deadline <= 0 {
		deadline = defaultDeadline
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	type callResult struct {
		id      types.SourceID
		records []types.CandidateRecord
		err     error
	}

	// Buffered so a late goroutine can always deliver and exit.
	ch := make(chan callResult, len(adapters))
	for _, a := range adapters {
		go func(a sources.Adapter) {
			records, err := a.Search(ctx, query, cfg)
			ch <- callResult{id: a.ID(), records: records, err: err}
		}(a)
	}

	pending := make(map[types.SourceID]bool, len(adapters))
	for _, a := range adapters {
		pending[a.ID()] = true
	}

	outcomes := make(map[types.SourceID]SourceOutcome, len(adapters))
	for len(pending) > 0 {
		select {
		case r := <-ch:
			delete(pending, r.id)
			o := classify(r.records, r.err)
			outcomes[r.id] = o
			if o.Status == StatusFailed {
				fmt.Fprintf(w, "warning: source %s failed: %v\n", r.id, r.err)
			} else if o.Status == StatusTimedOut {
				fmt.Fprintf(w, "warning: source %s timed out\n", r.id)
			}
		case <-ctx.Done():
			for id := range pending {
				outcomes[id] = SourceOutcome{Status: StatusTimedOut, Err: ctx.Err()}
				fmt.Fprintf(w, "warning: source %s timed out\n", id)
			}
			return outcomes
		}
	}
	return outcomes
}

// classify maps an adapter call's return values to a terminal state.
func classify(records []types.CandidateRecord, err error) SourceOutcome {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return SourceOutcome{Status: StatusTimedOut, Err: err}
	case err != nil:
		return SourceOutcome{Status: StatusFailed, Err: err}
	case len(records) == 0:
		return SourceOutcome{Status: StatusEmpty}
	default:
		return SourceOutcome{Status: StatusSuccess, Records: records}
	}
}
