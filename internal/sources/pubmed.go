// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholar-engine/internal/httputil"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

// pubMedESearchBase is the NCBI E-utilities esearch endpoint. Declared as a
// var so tests can substitute an httptest server.
var pubMedESearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// PubMedAdapter queries PubMed through NCBI E-utilities. Like Europe PMC it
// offers no author profile, so the adapter returns a sparse evidence record
// with the publication count for the author's name.
type PubMedAdapter struct {
	Client *http.Client
}

// ID returns the source identifier.
func (a *PubMedAdapter) ID() types.SourceID { return types.SourcePubMed }

// Search counts PubMed publications for the author name.
func (a *PubMedAdapter) Search(ctx context.Context, query types.SearchQuery, cfg types.ResolveConfig) ([]types.CandidateRecord, error) {
	term := query.Name + "[Author]"
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {"0"},
	}
	if cfg.NCBIAPIKey != "" {
		params.Set("api_key", cfg.NCBIAPIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pubMedESearchBase+"?"+params.Encode(), nil)
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
		return nil, fmt.Errorf("PubMed API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed API returned HTTP %d", resp.StatusCode)
	}

	var pr pubMedResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing PubMed response: %w", err)
	}

	// E-utilities reports the count as a JSON string.
	count, err := strconv.Atoi(pr.ESearchResult.Count)
	if err != nil {
		return nil, fmt.Errorf("parsing PubMed count %q: %w", pr.ESearchResult.Count, err)
	}
	if count <= 0 {
		return nil, nil
	}

	return []types.CandidateRecord{{
		SourceID:   types.SourcePubMed,
		ExternalID: term,
		Name:       query.Name,
		PaperCount: intPtr(count),
	}}, nil
}

// NCBI E-utilities JSON structures.
type pubMedResponse struct {
	ESearchResult pubMedESearchResult `json:"esearchresult"`
}

type pubMedESearchResult struct {
	Count string `json:"count"`
}
