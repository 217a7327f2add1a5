// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-engine/internal/httputil"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

// europePMCBase is the Europe PMC REST search endpoint. Declared as a var
// so tests can substitute an httptest server.
var europePMCBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// EuropePMCAdapter queries Europe PMC. It has no author profile endpoint,
// so the adapter counts publications indexed under the author's name and
// returns a sparse evidence record carrying only the query name and the
// paper count.
type EuropePMCAdapter struct {
	Client *http.Client
}

// ID returns the source identifier.
func (a *EuropePMCAdapter) ID() types.SourceID { return types.SourceEuropePMC }

// Search counts Europe PMC publications for the author name.
func (a *EuropePMCAdapter) Search(ctx context.Context, query types.SearchQuery, cfg types.ResolveConfig) ([]types.CandidateRecord, error) {
	term := fmt.Sprintf("AUTH:%q", query.Name)
	params := url.Values{
		"query":      {term},
		"format":     {"json"},
		"resultType": {"lite"},
		"pageSize":   {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, europePMCBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Europe PMC API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Europe PMC API returned HTTP %d", resp.StatusCode)
	}

	var er europePMCResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing Europe PMC response: %w", err)
	}
	if er.HitCount <= 0 {
		return nil, nil
	}

	return []types.CandidateRecord{{
		SourceID:   types.SourceEuropePMC,
		ExternalID: term,
		Name:       query.Name,
		PaperCount: intPtr(er.HitCount),
	}}, nil
}

// Europe PMC API JSON structures.
type europePMCResponse struct {
	HitCount int `json:"hitCount"`
}
