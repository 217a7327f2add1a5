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

// semanticAuthorBase is the Semantic Scholar author search endpoint.
// Declared as a var so tests can substitute an httptest server.
var semanticAuthorBase = "https://api.semanticscholar.org/graph/v1/author/search"

const semanticAuthorFields = "authorId,name,aliases,externalIds,affiliations,homepage,hIndex,paperCount,citationCount"

// SemanticScholarAdapter queries the Semantic Scholar Graph API.
type SemanticScholarAdapter struct {
	Client *http.Client
}

// ID returns the source identifier.
func (a *SemanticScholarAdapter) ID() types.SourceID { return types.SourceSemanticScholar }

// Search queries the author search endpoint and returns the best name match.
func (a *SemanticScholarAdapter) Search(ctx context.Context, query types.SearchQuery, cfg types.ResolveConfig) ([]types.CandidateRecord, error) {
	params := url.Values{
		"query":  {query.Name},
		"limit":  {fmt.Sprintf("%d", maxCandidates(cfg))},
		"fields": {semanticAuthorFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAuthorBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.SemanticScholarAPIKey != "" {
		req.Header.Set("x-api-key", cfg.SemanticScholarAPIKey)
	}

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticAuthorResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	if len(sr.Data) == 0 {
		return nil, nil
	}

	names := make([][]string, len(sr.Data))
	for i, author := range sr.Data {
		names[i] = append([]string{author.Name}, author.Aliases...)
	}
	best := sr.Data[bestNameMatch(query.Name, names)]

	rec := types.CandidateRecord{
		SourceID:      types.SourceSemanticScholar,
		ExternalID:    best.AuthorID,
		Name:          best.Name,
		ORCID:         best.ExternalIDs.ORCID,
		HomepageURL:   best.Homepage,
		HIndex:        best.HIndex,
		PaperCount:    best.PaperCount,
		CitationCount: best.CitationCount,
	}
	if rec.Name == "" {
		rec.Name = query.Name
	}
	// S2 reports affiliations as bare institution names.
	for _, aff := range best.Affiliations {
		if aff != "" {
			rec.Affiliations = append(rec.Affiliations, types.Affiliation{InstitutionName: aff})
		}
	}
	return []types.CandidateRecord{rec}, nil
}

// Semantic Scholar API JSON structures.
type semanticAuthorResponse struct {
	Total int              `json:"total"`
	Data  []semanticAuthor `json:"data"`
}

type semanticAuthor struct {
	AuthorID      string              `json:"authorId"`
	Name          string              `json:"name"`
	Aliases       []string            `json:"aliases"`
	Affiliations  []string            `json:"affiliations"`
	Homepage      string              `json:"homepage"`
	HIndex        *int                `json:"hIndex"`
	PaperCount    *int                `json:"paperCount"`
	CitationCount *int                `json:"citationCount"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticExternalIDs struct {
	ORCID string `json:"ORCID"`
	DBLP  string `json:"DBLP"`
}
