// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// openAlexAuthorBase is the OpenAlex author search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexAuthorBase = "https://api.openalex.org/authors"

// OpenAlexAdapter queries the OpenAlex API.
type OpenAlexAdapter struct {
	Client *http.Client
}

// ID returns the source identifier.
func (a *OpenAlexAdapter) ID() types.SourceID { return types.SourceOpenAlex }

// Search queries the OpenAlex authors endpoint and returns the best name match.
func (a *OpenAlexAdapter) Search(ctx context.Context, query types.SearchQuery, cfg types.ResolveConfig) ([]types.CandidateRecord, error) {
	params := url.Values{
		"search":   {query.Name},
		"per_page": {fmt.Sprintf("%d", maxCandidates(cfg))},
	}
	if cfg.OpenAlexEmail != "" {
		params.Set("mailto", cfg.OpenAlexEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexAuthorBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexAuthorResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	if len(oar.Results) == 0 {
		return nil, nil
	}

	names := make([][]string, len(oar.Results))
	for i, author := range oar.Results {
		names[i] = append([]string{author.DisplayName}, author.DisplayNameAlternatives...)
	}
	best := oar.Results[bestNameMatch(query.Name, names)]

	rec := types.CandidateRecord{
		SourceID:        types.SourceOpenAlex,
		ExternalID:      trimOpenAlexID(best.ID),
		Name:            best.DisplayName,
		ORCID:           best.orcid(),
		HomepageURL:     best.HomepageURL,
		PaperCount:      best.WorksCount,
		CitationCount:   best.CitedByCount,
		ProfileImageURL: best.ImageURL,
	}
	if rec.Name == "" {
		rec.Name = query.Name
	}
	if best.SummaryStats != nil {
		rec.HIndex = best.SummaryStats.HIndex
	}
	if inst := best.LastKnownInstitution; inst != nil && inst.DisplayName != "" {
		rec.Affiliations = append(rec.Affiliations, types.Affiliation{
			InstitutionID:   trimOpenAlexID(inst.ID),
			InstitutionName: inst.DisplayName,
			Country:         inst.CountryCode,
		})
	}
	// OpenAlex concepts double as fields of study.
	for _, c := range best.XConcepts {
		if c.DisplayName != "" {
			rec.FieldsOfStudy = append(rec.FieldsOfStudy, c.DisplayName)
		}
	}
	return []types.CandidateRecord{rec}, nil
}

// trimOpenAlexID strips the https://openalex.org/ prefix from entity IDs.
func trimOpenAlexID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// OpenAlex API JSON structures.
type openAlexAuthorResponse struct {
	Meta    openAlexMeta     `json:"meta"`
	Results []openAlexAuthor `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexAuthor struct {
	ID                      string                `json:"id"`
	DisplayName             string                `json:"display_name"`
	DisplayNameAlternatives []string              `json:"display_name_alternatives"`
	ORCID                   string                `json:"orcid"`
	IDs                     openAlexIDs           `json:"ids"`
	WorksCount              *int                  `json:"works_count"`
	CitedByCount            *int                  `json:"cited_by_count"`
	SummaryStats            *openAlexSummaryStats `json:"summary_stats"`
	HomepageURL             string                `json:"homepage_url"`
	ImageURL                string                `json:"image_url"`
	LastKnownInstitution    *openAlexInstitution  `json:"last_known_institution"`
	XConcepts               []openAlexConcept     `json:"x_concepts"`
}

func (a openAlexAuthor) orcid() string {
	if a.ORCID != "" {
		return a.ORCID
	}
	return a.IDs.ORCID
}

type openAlexIDs struct {
	OpenAlex string `json:"openalex"`
	ORCID    string `json:"orcid"`
}

type openAlexSummaryStats struct {
	HIndex *int `json:"h_index"`
}

type openAlexInstitution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

type openAlexConcept struct {
	DisplayName string `json:"display_name"`
}
