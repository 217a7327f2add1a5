// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"testing"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		profile types.AuthorProfile
		want    float64
	}{
		{
			name:    "empty profile",
			profile: types.AuthorProfile{},
			want:    0,
		},
		{
			name: "single source no papers",
			profile: types.AuthorProfile{
				Sources: []types.SourceID{types.SourceDBLP},
			},
			want: 0.2,
		},
		{
			name: "two sources with papers and orcid",
			profile: types.AuthorProfile{
				Sources:    []types.SourceID{types.SourceSemanticScholar, types.SourceOpenAlex},
				PaperCount: intp(161),
				ORCID:      "0000-0002-1825-0097",
			},
			want: 0.8,
		},
		{
			name: "zero paper count earns no paper weight",
			profile: types.AuthorProfile{
				Sources:    []types.SourceID{types.SourceDBLP},
				PaperCount: intp(0),
			},
			want: 0.2,
		},
		{
			name: "completeness bonus caps at 0.2",
			profile: types.AuthorProfile{
				Sources:      []types.SourceID{types.SourceSemanticScholar},
				ORCID:        "0000-0002-1825-0097",
				Affiliations: []types.Affiliation{{InstitutionName: "Stanford University"}},
			},
			want: 0.4,
		},
		{
			name: "all five sources clamp to 1.0",
			profile: types.AuthorProfile{
				Sources:      types.AllSources,
				PaperCount:   intp(10),
				ORCID:        "0000-0002-1825-0097",
				Affiliations: []types.Affiliation{{InstitutionName: "Stanford University"}},
			},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.profile); got != tt.want {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreMonotonicInSources(t *testing.T) {
	p := types.AuthorProfile{PaperCount: intp(42)}
	prev := Score(p)
	for _, id := range types.AllSources {
		p.Sources = append(p.Sources, id)
		got := Score(p)
		if got < prev {
			t.Errorf("score decreased from %v to %v at %d sources", prev, got, len(p.Sources))
		}
		prev = got
	}
}
