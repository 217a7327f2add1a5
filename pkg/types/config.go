// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the source adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout for a single adapter call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolveConfig holds settings for one resolution pass.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// Deadline bounds the whole fan-out: adapter calls still running when it
	// elapses are abandoned and reported as timed out (default 15s).
	Deadline time.Duration `json:"deadline" yaml:"deadline"`

	// MaxCandidates is how many candidates each adapter requests from its
	// source before picking the best name match (default 5).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// Per-source toggles. A disabled source is simply not queried.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableOpenAlex        bool `json:"enable_openalex" yaml:"enable_openalex"`
	EnableDBLP            bool `json:"enable_dblp" yaml:"enable_dblp"`
	EnableEuropePMC       bool `json:"enable_europepmc" yaml:"enable_europepmc"`
	EnablePubMed          bool `json:"enable_pubmed" yaml:"enable_pubmed"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// NCBIAPIKey is an optional NCBI E-utilities key for higher rate limits.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`
}

// DefaultResolveConfig returns the configuration used when none is supplied:
// all sources enabled, a 15-second fan-out deadline, and a 20-second
// per-request HTTP timeout.
func DefaultResolveConfig() ResolveConfig {
	return ResolveConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   20 * time.Second,
			UserAgent: "scholar-engine/0.1",
		},
		Deadline:              15 * time.Second,
		MaxCandidates:         5,
		EnableSemanticScholar: true,
		EnableOpenAlex:        true,
		EnableDBLP:            true,
		EnableEuropePMC:       true,
		EnablePubMed:          true,
	}
}
