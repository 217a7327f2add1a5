// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources queries external bibliographic systems for author
// candidates. Each source (Semantic Scholar, OpenAlex, DBLP, Europe PMC,
// PubMed) implements the Adapter interface per the Strategy pattern; the
// resolution engine never branches on which source it is calling.
package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// Adapter searches a single bibliographic source for an author. A nil error
// with zero records means the source has no match, which is a valid outcome
// distinct from a failure. An adapter returns at most one record: the best
// name match among the source's top candidates.
type Adapter interface {
	ID() types.SourceID
	Search(ctx context.Context, query types.SearchQuery, cfg types.ResolveConfig) ([]types.CandidateRecord, error)
}

// Enabled returns the adapters switched on in cfg, always in the same
// order, all sharing client. A nil client makes each adapter build its own
// from the configured timeout.
func Enabled(cfg types.ResolveConfig, client *http.Client) []Adapter {
	var adapters []Adapter
	if cfg.EnableSemanticScholar {
		adapters = append(adapters, &SemanticScholarAdapter{Client: client})
	}
	if cfg.EnableOpenAlex {
		adapters = append(adapters, &OpenAlexAdapter{Client: client})
	}
	if cfg.EnableDBLP {
		adapters = append(adapters, &DBLPAdapter{Client: client})
	}
	if cfg.EnableEuropePMC {
		adapters = append(adapters, &EuropePMCAdapter{Client: client})
	}
	if cfg.EnablePubMed {
		adapters = append(adapters, &PubMedAdapter{Client: client})
	}
	return adapters
}

// bestNameMatch picks the candidate whose names best match target.
// candidates[i] holds the i-th candidate's display name plus any aliases.
// Exact normalized equality wins; otherwise substring containment in either
// direction; otherwise the first candidate. Returns -1 when there are none.
func bestNameMatch(target string, candidates [][]string) int {
	if len(candidates) == 0 {
		return -1
	}

	t := foldName(target)
	contained := -1
	for i, names := range candidates {
		for _, n := range names {
			if n == "" {
				continue
			}
			fn := foldName(n)
			if fn == t {
				return i
			}
			if contained < 0 && (strings.Contains(fn, t) || strings.Contains(t, fn)) {
				contained = i
			}
		}
	}
	if contained >= 0 {
		return contained
	}
	return 0
}

// foldName lowercases a name, strips periods, and collapses whitespace for
// candidate selection. Heavier normalization (diacritic folding) belongs to
// the resolver; at the adapter layer the source has already matched the
// query, so a light fold suffices.
func foldName(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, ".", ""))
	return strings.Join(strings.Fields(s), " ")
}

// maxCandidates applies the configured per-source candidate cap.
func maxCandidates(cfg types.ResolveConfig) int {
	if cfg.MaxCandidates > 0 {
		return cfg.MaxCandidates
	}
	return 5
}

func intPtr(n int) *int { return &n }
