// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns an author lookup query into one canonical author
// profile. It fans the query out to every configured bibliographic source
// concurrently, clusters the returned candidate records into hypothesized
// authors, merges the winning cluster field by field, and attaches a
// confidence score. The result is deterministic and explainable for a fixed
// set of source responses; it is not a guarantee of globally correct author
// disambiguation.
//
// See docs/ARCHITECTURE § Resolution.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/scholar-engine/internal/sources"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

// ErrNoMatch means no source produced a candidate record for the query, or
// no cluster could be formed. Data genuinely absent — not an engine fault.
var ErrNoMatch = errors.New("no author match found")

// ErrAllSourcesFailed means every configured source ended in a hard failure
// with none succeeding or answering empty — a systemic signal (upstreams
// unreachable) rather than a genuine absence of data.
var ErrAllSourcesFailed = errors.New("all sources failed")

// ValidationError reports a malformed query, rejected before any source is
// contacted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid query: " + e.Reason }

// Resolution is the full outcome of one resolution pass: the per-source
// terminal states and, on success, the merged profile.
type Resolution struct {
	Query    types.SearchQuery
	Profile  *types.AuthorProfile
	Outcomes map[types.SourceID]SourceOutcome
}

// Resolve looks up one author across all configured sources and returns the
// merged profile. Per-source failures and timeouts are absorbed here and
// reported as warnings on w; only three conditions surface as errors:
// a *ValidationError for a malformed query, ErrNoMatch when no source has
// the author, and ErrAllSourcesFailed when every source hard-failed. The
// caller can rely on errors.Is/errors.As to tell them apart.
func Resolve(ctx context.Context, query types.SearchQuery, adapters []sources.Adapter, cfg types.ResolveConfig, w io.Writer) (Resolution, error) {
	query.Name = strings.TrimSpace(query.Name)
	if query.Name == "" {
		return Resolution{}, &ValidationError{Reason: "author name must be non-empty"}
	}
	if len(adapters) == 0 {
		return Resolution{}, &ValidationError{Reason: "no sources configured"}
	}

	outcomes := fanOut(ctx, query, adapters, cfg, w)
	res := Resolution{Query: query, Outcomes: outcomes}

	failed := 0
	for _, o := range outcomes {
		if o.Status == StatusFailed {
			failed++
		}
	}
	if failed == len(outcomes) {
		return res, fmt.Errorf("%w: %s", ErrAllSourcesFailed, failureSummary(outcomes))
	}

	// Flatten successful records in fixed source order so clustering and
	// merging never depend on which source answered first.
	var records []types.CandidateRecord
	for _, a := range adapters {
		if o, ok := outcomes[a.ID()]; ok && o.Status == StatusSuccess {
			records = append(records, o.Records...)
		}
	}
	if len(records) == 0 {
		return res, ErrNoMatch
	}

	cluster := selectCluster(buildClusters(records, query))
	if len(cluster) == 0 {
		return res, ErrNoMatch
	}

	profile := mergeCluster(cluster, time.Now())
	profile.ConfidenceScore = Score(profile)
	res.Profile = &profile
	return res, nil
}

// failureSummary joins per-source error messages in source-ID order.
func failureSummary(outcomes map[types.SourceID]SourceOutcome) string {
	ids := make([]string, 0, len(outcomes))
	for id := range outcomes {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if o := outcomes[types.SourceID(id)]; o.Err != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", id, o.Err))
		}
	}
	return strings.Join(parts, "; ")
}
