// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"testing"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Smith", "jane smith"},
		{"  Jane   Smith ", "jane smith"},
		{"J. A. Smith", "j a smith"},
		{"Müller", "muller"},
		{"José García", "jose garcia"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeORCID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0000-0002-1825-0097", "0000-0002-1825-0097"},
		{"https://orcid.org/0000-0002-1825-0097", "0000-0002-1825-0097"},
		{"0000000218250097", "0000-0002-1825-0097"},
		{"0000-0001-5109-370x", "0000-0001-5109-370X"},
		{"not an orcid", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeORCID(tt.in); got != tt.want {
			t.Errorf("normalizeORCID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func affiliated(source types.SourceID, name, institution string) types.CandidateRecord {
	return types.CandidateRecord{
		SourceID:     source,
		Name:         name,
		Affiliations: []types.Affiliation{{InstitutionName: institution}},
	}
}

func TestRecordsMatch(t *testing.T) {
	tests := []struct {
		name  string
		a, b  types.CandidateRecord
		query types.SearchQuery
		want  bool
	}{
		{
			name: "same ORCID different names",
			a:    types.CandidateRecord{Name: "Jane Smith", ORCID: "0000-0002-1825-0097"},
			b:    types.CandidateRecord{Name: "J. Smith-Jones", ORCID: "https://orcid.org/0000-0002-1825-0097"},
			want: true,
		},
		{
			name: "different ORCIDs same name never match",
			a:    types.CandidateRecord{Name: "Jane Smith", ORCID: "0000-0002-1825-0097"},
			b:    types.CandidateRecord{Name: "Jane Smith", ORCID: "0000-0001-5109-3700"},
			want: false,
		},
		{
			name: "name and institution agree",
			a:    affiliated(types.SourceSemanticScholar, "Jane Smith", "Stanford University"),
			b:    affiliated(types.SourceOpenAlex, "jane smith", "Stanford University"),
			want: true,
		},
		{
			name: "institution containment counts as overlap",
			a:    affiliated(types.SourceSemanticScholar, "Jane Smith", "Stanford"),
			b:    affiliated(types.SourceOpenAlex, "Jane Smith", "Stanford University"),
			want: true,
		},
		{
			name:  "institution hint matched by one side",
			a:     affiliated(types.SourceSemanticScholar, "Jane Smith", "Stanford University"),
			b:     types.CandidateRecord{SourceID: types.SourceDBLP, Name: "Jane Smith"},
			query: types.SearchQuery{Institution: "stanford university"},
			want:  true,
		},
		{
			name: "shared field of study",
			a:    types.CandidateRecord{Name: "Jane Smith", FieldsOfStudy: []string{"Computer Science", "Biology"}},
			b:    types.CandidateRecord{Name: "Jane Smith", FieldsOfStudy: []string{"computer science"}},
			want: true,
		},
		{
			name: "name only with no contradiction",
			a:    types.CandidateRecord{Name: "Jane Smith"},
			b:    types.CandidateRecord{Name: " jane  smith "},
			want: true,
		},
		{
			name: "initial does not equal a full first name",
			a:    types.CandidateRecord{Name: "Jane Smith"},
			b:    types.CandidateRecord{Name: "J. Smith"},
			want: false,
		},
		{
			name: "different names never match without ORCID",
			a:    types.CandidateRecord{Name: "Jane Smith"},
			b:    types.CandidateRecord{Name: "John Smith"},
			want: false,
		},
		{
			name: "conflicting emails block the fallback",
			a:    types.CandidateRecord{Name: "Jane Smith", Email: "jane@stanford.edu"},
			b:    types.CandidateRecord{Name: "Jane Smith", Email: "jsmith@mit.edu"},
			want: false,
		},
		{
			name: "disjoint affiliation sets block the fallback",
			a:    affiliated(types.SourceSemanticScholar, "Jane Smith", "Stanford University"),
			b:    affiliated(types.SourceOpenAlex, "Jane Smith", "University of Melbourne"),
			want: false,
		},
		{
			name:  "email matching the query hint allows the fallback",
			a:     types.CandidateRecord{Name: "Jane Smith", Email: "jane@stanford.edu"},
			b:     types.CandidateRecord{Name: "Jane Smith"},
			query: types.SearchQuery{Email: "Jane@Stanford.edu"},
			want:  true,
		},
		{
			name:  "email contradicting the query hint blocks the fallback",
			a:     types.CandidateRecord{Name: "Jane Smith", Email: "jane@stanford.edu"},
			b:     types.CandidateRecord{Name: "Jane Smith"},
			query: types.SearchQuery{Email: "jsmith@mit.edu"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recordsMatch(tt.a, tt.b, tt.query); got != tt.want {
				t.Errorf("recordsMatch = %v, want %v", got, tt.want)
			}
			// Matching is symmetric.
			if got := recordsMatch(tt.b, tt.a, tt.query); got != tt.want {
				t.Errorf("recordsMatch reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildClustersTransitiveClosure(t *testing.T) {
	// A links to B by institution, B links to C by ORCID; A never matches C
	// directly, yet all three land in one cluster.
	a := affiliated(types.SourceSemanticScholar, "Jane Smith", "Stanford University")
	b := affiliated(types.SourceOpenAlex, "Jane Smith", "Stanford")
	b.ORCID = "0000-0002-1825-0097"
	c := types.CandidateRecord{
		SourceID:     types.SourceDBLP,
		Name:         "Jane A. Smith",
		ORCID:        "0000-0002-1825-0097",
		Affiliations: []types.Affiliation{{InstitutionName: "MIT"}},
	}
	other := types.CandidateRecord{SourceID: types.SourceOpenAlex, Name: "John Smith"}

	clusters := buildClusters([]types.CandidateRecord{a, b, c, other}, types.SearchQuery{Name: "Jane Smith"})
	if len(clusters) != 2 {
		t.Fatalf("len(clusters) = %d, want 2", len(clusters))
	}
	if len(clusters[0]) != 3 {
		t.Errorf("len(clusters[0]) = %d, want 3", len(clusters[0]))
	}
	if len(clusters[1]) != 1 || clusters[1][0].Name != "John Smith" {
		t.Errorf("clusters[1] = %+v, want the lone John Smith record", clusters[1])
	}
}

func TestBuildClustersEmpty(t *testing.T) {
	if got := buildClusters(nil, types.SearchQuery{}); got != nil {
		t.Errorf("buildClusters(nil) = %v, want nil", got)
	}
}

func TestSelectCluster(t *testing.T) {
	count := func(n int) *int { return &n }

	twoSources := []types.CandidateRecord{
		{SourceID: types.SourceSemanticScholar, Name: "Jane Smith", PaperCount: count(10)},
		{SourceID: types.SourceOpenAlex, Name: "Jane Smith"},
	}
	oneSourceManyPapers := []types.CandidateRecord{
		{SourceID: types.SourceDBLP, Name: "Jane Smith", PaperCount: count(500)},
	}

	got := selectCluster([][]types.CandidateRecord{oneSourceManyPapers, twoSources})
	if len(got) != 2 {
		t.Errorf("source count should beat paper count, got cluster of %d", len(got))
	}

	// Equal source counts: higher total paper count wins.
	few := []types.CandidateRecord{{SourceID: types.SourceDBLP, Name: "Jane Smith", PaperCount: count(3)}}
	many := []types.CandidateRecord{{SourceID: types.SourceOpenAlex, Name: "Jane Smith", PaperCount: count(80)}}
	got = selectCluster([][]types.CandidateRecord{few, many})
	if got[0].SourceID != types.SourceOpenAlex {
		t.Errorf("paper count tie-break picked %s, want %s", got[0].SourceID, types.SourceOpenAlex)
	}

	// Full tie: lexicographically smallest source-ID list, independent of
	// cluster order.
	x := []types.CandidateRecord{{SourceID: types.SourceOpenAlex, Name: "Jane Smith", PaperCount: count(7)}}
	y := []types.CandidateRecord{{SourceID: types.SourceDBLP, Name: "Jane Smith", PaperCount: count(7)}}
	for _, clusters := range [][][]types.CandidateRecord{{x, y}, {y, x}} {
		got = selectCluster(clusters)
		if got[0].SourceID != types.SourceDBLP {
			t.Errorf("lexicographic tie-break picked %s, want %s", got[0].SourceID, types.SourceDBLP)
		}
	}

	if got := selectCluster(nil); got != nil {
		t.Errorf("selectCluster(nil) = %v, want nil", got)
	}
}
