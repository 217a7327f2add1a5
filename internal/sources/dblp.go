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

// dblpAuthorBase is the DBLP author search endpoint. Declared as a var so
// tests can substitute an httptest server.
var dblpAuthorBase = "https://dblp.org/search/author/api"

// DBLPAdapter queries the DBLP author search API. DBLP carries no citation
// metrics; its value is the stable pid, the homepage URL, and affiliation
// notes for computer-science authors.
type DBLPAdapter struct {
	Client *http.Client
}

// ID returns the source identifier.
func (a *DBLPAdapter) ID() types.SourceID { return types.SourceDBLP }

// Search queries DBLP and returns the best name match.
func (a *DBLPAdapter) Search(ctx context.Context, query types.SearchQuery, cfg types.ResolveConfig) ([]types.CandidateRecord, error) {
	params := url.Values{
		"q":      {query.Name},
		"format": {"json"},
		"h":      {fmt.Sprintf("%d", maxCandidates(cfg))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dblpAuthorBase+"?"+params.Encode(), nil)
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
		return nil, fmt.Errorf("DBLP API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DBLP API returned HTTP %d", resp.StatusCode)
	}

	var dr dblpResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("parsing DBLP response: %w", err)
	}
	hits := dr.Result.Hits.Hit
	if len(hits) == 0 {
		return nil, nil
	}

	names := make([][]string, len(hits))
	for i, h := range hits {
		names[i] = []string{h.Info.Author}
	}
	best := hits[bestNameMatch(query.Name, names)].Info

	rec := types.CandidateRecord{
		SourceID:    types.SourceDBLP,
		ExternalID:  best.pid(),
		Name:        best.Author,
		HomepageURL: best.URL,
	}
	if rec.Name == "" {
		rec.Name = query.Name
	}
	for _, note := range best.Notes.Note {
		if note.Type == "affiliation" && note.Text != "" {
			rec.Affiliations = append(rec.Affiliations, types.Affiliation{InstitutionName: note.Text})
		}
	}
	return []types.CandidateRecord{rec}, nil
}

// DBLP API JSON structures. The hit list and note list collapse to a single
// object when there is exactly one entry, so both get tolerant unmarshalers.
type dblpResponse struct {
	Result dblpResult `json:"result"`
}

type dblpResult struct {
	Hits dblpHits `json:"hits"`
}

type dblpHits struct {
	Hit dblpHitList `json:"hit"`
}

type dblpHitList []dblpHit

func (l *dblpHitList) UnmarshalJSON(data []byte) error {
	var many []dblpHit
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one dblpHit
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = dblpHitList{one}
	return nil
}

type dblpHit struct {
	Info dblpAuthorInfo `json:"info"`
}

type dblpAuthorInfo struct {
	Author string       `json:"author"`
	PID    string       `json:"@pid"`
	URL    string       `json:"url"`
	Notes  dblpNoteList `json:"notes"`
}

// pid returns the DBLP person ID, falling back to the URL path when the
// explicit field is absent.
func (i dblpAuthorInfo) pid() string {
	if i.PID != "" {
		return i.PID
	}
	const marker = "/pid/"
	if idx := strings.Index(i.URL, marker); idx >= 0 {
		return i.URL[idx+len(marker):]
	}
	return i.URL
}

type dblpNoteList struct {
	Note []dblpNote
}

func (l *dblpNoteList) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Note json.RawMessage `json:"note"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper.Note) == 0 {
		return nil
	}
	var many []dblpNote
	if err := json.Unmarshal(wrapper.Note, &many); err == nil {
		l.Note = many
		return nil
	}
	var one dblpNote
	if err := json.Unmarshal(wrapper.Note, &one); err != nil {
		return err
	}
	l.Note = []dblpNote{one}
	return nil
}

type dblpNote struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}
