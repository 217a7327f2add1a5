// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// ProfileFile is the on-disk representation of one resolution: the query,
// how each source answered, and the merged profile. A resolution can be
// saved and reloaded later without re-querying the sources.
type ProfileFile struct {
	Query   types.SearchQuery    `yaml:"query"`
	Sources []SourceReport       `yaml:"sources"`
	Profile *types.AuthorProfile `yaml:"profile,omitempty"`
	Summary ProfileSummary       `yaml:"summary"`
}

// SourceReport stores one source's terminal state in a serializable form.
type SourceReport struct {
	ID     types.SourceID `yaml:"id"`
	Status SourceStatus   `yaml:"status"`
	Error  string         `yaml:"error,omitempty"`
}

// ProfileSummary stores resolution statistics and a timestamp.
type ProfileSummary struct {
	Resolved  bool      `yaml:"resolved"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteProfileFile saves a resolution to a YAML file. Source reports are
// written in fixed source order.
func WriteProfileFile(path string, res Resolution) error {
	pf := ProfileFile{
		Query:   res.Query,
		Profile: res.Profile,
		Summary: ProfileSummary{
			Resolved:  res.Profile != nil,
			Timestamp: time.Now(),
		},
	}
	for _, id := range types.AllSources {
		o, ok := res.Outcomes[id]
		if !ok {
			continue
		}
		report := SourceReport{ID: id, Status: o.Status}
		if o.Err != nil {
			report.Error = o.Err.Error()
		}
		pf.Sources = append(pf.Sources, report)
	}

	data, err := yaml.Marshal(&pf)
	if err != nil {
		return fmt.Errorf("marshaling profile file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadProfileFile loads a previously saved profile file from disk.
func ReadProfileFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	var pf ProfileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}
	return &pf, nil
}
