// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

func intp(n int) *int { return &n }

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func mergeFixture() []types.CandidateRecord {
	return []types.CandidateRecord{
		{
			SourceID:      types.SourceOpenAlex,
			ExternalID:    "A123",
			Name:          "Jane Smith",
			ORCID:         "https://orcid.org/0000-0002-1825-0097",
			HIndex:        intp(30),
			PaperCount:    intp(120),
			CitationCount: intp(4100),
			FieldsOfStudy: []string{"computer science", "Machine Learning"},
			Affiliations: []types.Affiliation{
				{InstitutionName: "Stanford University", StartDate: date(2019, 9, 1)},
			},
		},
		{
			SourceID:      types.SourceSemanticScholar,
			ExternalID:    "456",
			Name:          "Jane A. Smith",
			HomepageURL:   "https://janesmith.example.org",
			HIndex:        intp(28),
			PaperCount:    intp(135),
			CitationCount: intp(3900),
			FieldsOfStudy: []string{"Computer Science"},
			Affiliations: []types.Affiliation{
				{InstitutionName: "stanford university", InstitutionID: "I97018004", StartDate: date(2019, 9, 1)},
				{InstitutionName: "MIT", StartDate: date(2012, 1, 15), EndDate: date(2019, 6, 30)},
			},
		},
		{
			SourceID:   types.SourceEuropePMC,
			ExternalID: `AUTH:"Jane Smith"`,
			Name:       "Jane Smith",
			PaperCount: intp(161),
		},
	}
}

func TestMergeCluster(t *testing.T) {
	now := date(2026, 8, 26)
	p := mergeCluster(mergeFixture(), now)

	// Name comes from the highest-priority source in the cluster.
	if p.Name != "Jane A. Smith" {
		t.Errorf("Name = %q, want the semantic_scholar name", p.Name)
	}
	if p.ORCID != "0000-0002-1825-0097" {
		t.Errorf("ORCID = %q, want canonical form", p.ORCID)
	}
	if p.HomepageURL != "https://janesmith.example.org" {
		t.Errorf("HomepageURL = %q", p.HomepageURL)
	}
	if p.AuthorID != "0000-0002-1825-0097" {
		t.Errorf("AuthorID = %q, want the ORCID", p.AuthorID)
	}

	// Numeric metrics take the maximum across the cluster.
	if p.HIndex == nil || *p.HIndex != 30 {
		t.Errorf("HIndex = %v, want 30", p.HIndex)
	}
	if p.PaperCount == nil || *p.PaperCount != 161 {
		t.Errorf("PaperCount = %v, want 161", p.PaperCount)
	}
	if p.CitationCount == nil || *p.CitationCount != 4100 {
		t.Errorf("CitationCount = %v, want 4100", p.CitationCount)
	}

	wantFields := []string{"Computer Science", "Machine Learning"}
	if !reflect.DeepEqual(p.FieldsOfStudy, wantFields) {
		t.Errorf("FieldsOfStudy = %v, want %v", p.FieldsOfStudy, wantFields)
	}

	// The two Stanford entries collapse into one, keeping the institution ID
	// from the entry that carried it; ongoing affiliations sort first.
	if len(p.Affiliations) != 2 {
		t.Fatalf("len(Affiliations) = %d, want 2: %+v", len(p.Affiliations), p.Affiliations)
	}
	if got := p.Affiliations[0]; normalizeInstitution(got.InstitutionName) != "stanford university" ||
		got.InstitutionID != "I97018004" || !got.EndDate.IsZero() {
		t.Errorf("Affiliations[0] = %+v, want ongoing Stanford entry with filled ID", got)
	}
	if got := p.Affiliations[1]; got.InstitutionName != "MIT" {
		t.Errorf("Affiliations[1] = %+v, want the ended MIT entry", got)
	}

	wantSources := []types.SourceID{types.SourceEuropePMC, types.SourceOpenAlex, types.SourceSemanticScholar}
	if !reflect.DeepEqual(p.Sources, wantSources) {
		t.Errorf("Sources = %v, want %v", p.Sources, wantSources)
	}
	if !p.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v, want %v", p.LastUpdated, now)
	}
}

// Merging must not depend on the order records arrived in.
func TestMergeClusterOrderInsensitive(t *testing.T) {
	now := date(2026, 8, 26)
	base := mergeCluster(mergeFixture(), now)

	perms := [][]int{{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	fixture := mergeFixture()
	for _, perm := range perms {
		shuffled := make([]types.CandidateRecord, len(perm))
		for i, j := range perm {
			shuffled[i] = fixture[j]
		}
		if got := mergeCluster(shuffled, now); !reflect.DeepEqual(got, base) {
			t.Errorf("merge of permutation %v differs:\n got %+v\nwant %+v", perm, got, base)
		}
	}
}

func TestSynthesizeAuthorIDWithoutORCID(t *testing.T) {
	cluster := []types.CandidateRecord{
		{SourceID: types.SourceDBLP, ExternalID: "42/7", Name: "Jane Smith"},
		{SourceID: types.SourceOpenAlex, ExternalID: "A123", Name: "Jane Smith"},
	}
	id := synthesizeAuthorID("", "Jane Smith", cluster)
	if len(id) != len("jane-smith-")+12 || id[:11] != "jane-smith-" {
		t.Errorf("AuthorID = %q, want jane-smith-<12 hex>", id)
	}

	// Same cluster in reverse order yields the same ID.
	reversed := []types.CandidateRecord{cluster[1], cluster[0]}
	if got := synthesizeAuthorID("", "Jane Smith", reversed); got != id {
		t.Errorf("AuthorID differs across record order: %q vs %q", got, id)
	}
}

func TestMaxCount(t *testing.T) {
	if got := maxCount(nil, nil); got != nil {
		t.Errorf("maxCount(nil, nil) = %v, want nil", got)
	}
	if got := maxCount(nil, intp(5)); got == nil || *got != 5 {
		t.Errorf("maxCount(nil, 5) = %v, want 5", got)
	}
	if got := maxCount(intp(9), intp(5)); got == nil || *got != 9 {
		t.Errorf("maxCount(9, 5) = %v, want 9", got)
	}
}
