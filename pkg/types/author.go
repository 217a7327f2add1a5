// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-engine
// resolution pipeline. See docs/ARCHITECTURE § Data Structures.
package types

import "time"

// SourceID identifies one external bibliographic source.
type SourceID string

const (
	SourceSemanticScholar SourceID = "semantic_scholar"
	SourceOpenAlex        SourceID = "openalex"
	SourceDBLP            SourceID = "dblp"
	SourceEuropePMC       SourceID = "europepmc"
	SourcePubMed          SourceID = "pubmed"
)

// AllSources lists every known source in merge-priority order: when two
// sources disagree on a scalar field, the earlier source wins.
var AllSources = []SourceID{
	SourceSemanticScholar,
	SourceOpenAlex,
	SourceDBLP,
	SourceEuropePMC,
	SourcePubMed,
}

// SearchQuery holds the author lookup parameters. Name is required; the
// remaining fields are optional disambiguation hints. A query is built once
// per request and never mutated.
type SearchQuery struct {
	Name         string `json:"name" yaml:"name"`
	Institution  string `json:"institution,omitempty" yaml:"institution,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty" yaml:"field_of_study,omitempty"`
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Affiliation is one institutional association reported by a source.
// A zero EndDate means the affiliation is ongoing.
type Affiliation struct {
	InstitutionID   string    `json:"institution_id,omitempty" yaml:"institution_id,omitempty"`
	InstitutionName string    `json:"institution_name" yaml:"institution_name"`
	Country         string    `json:"country,omitempty" yaml:"country,omitempty"`
	StartDate       time.Time `json:"start_date,omitzero" yaml:"start_date,omitempty"`
	EndDate         time.Time `json:"end_date,omitzero" yaml:"end_date,omitempty"`
}

// CandidateRecord is one source's view of a possible author match. Only
// SourceID is always set; a source may return an arbitrarily sparse record.
// Numeric fields are pointers so "absent" and "zero" stay distinguishable;
// present values are never negative.
type CandidateRecord struct {
	SourceID   SourceID `json:"source_id" yaml:"source_id"`
	ExternalID string   `json:"external_id" yaml:"external_id"`

	Name            string        `json:"name" yaml:"name"`
	ORCID           string        `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	Affiliations    []Affiliation `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	HomepageURL     string        `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	Email           string        `json:"email,omitempty" yaml:"email,omitempty"`
	HIndex          *int          `json:"h_index,omitempty" yaml:"h_index,omitempty"`
	PaperCount      *int          `json:"paper_count,omitempty" yaml:"paper_count,omitempty"`
	CitationCount   *int          `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
	FieldsOfStudy   []string      `json:"fields_of_study,omitempty" yaml:"fields_of_study,omitempty"`
	ProfileImageURL string        `json:"profile_image_url,omitempty" yaml:"profile_image_url,omitempty"`
}

// AuthorProfile is the canonical merged author record handed back to the
// caller. Sources is non-empty whenever a profile exists; "no match" is a
// distinct outcome, never a profile with zero sources. A profile is built
// once per successful resolution and not mutated afterwards.
type AuthorProfile struct {
	// AuthorID is synthesized from the merged ORCID when present, otherwise
	// from the normalized name plus a hash of the contributing external IDs.
	// It is stable for identical inputs within one resolution only.
	AuthorID string `json:"author_id" yaml:"author_id"`

	Name            string        `json:"name" yaml:"name"`
	ORCID           string        `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	Affiliations    []Affiliation `json:"affiliations" yaml:"affiliations"`
	HomepageURL     string        `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	Email           string        `json:"email,omitempty" yaml:"email,omitempty"`
	HIndex          *int          `json:"h_index,omitempty" yaml:"h_index,omitempty"`
	PaperCount      *int          `json:"paper_count,omitempty" yaml:"paper_count,omitempty"`
	CitationCount   *int          `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
	FieldsOfStudy   []string      `json:"fields_of_study" yaml:"fields_of_study"`
	ProfileImageURL string        `json:"profile_image_url,omitempty" yaml:"profile_image_url,omitempty"`

	// LastUpdated is the engine's wall-clock time at merge completion, not a
	// value reported by any source.
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`

	// Sources lists the contributing source IDs, sorted and deduplicated.
	Sources []SourceID `json:"sources" yaml:"sources"`

	// ConfidenceScore is a heuristic reliability estimate in [0, 1].
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`
}
