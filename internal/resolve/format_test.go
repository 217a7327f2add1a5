// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

func TestFormatText(t *testing.T) {
	profile := mergeCluster(mergeFixture(), time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	profile.ConfidenceScore = Score(profile)
	res := Resolution{
		Profile: &profile,
		Outcomes: map[types.SourceID]SourceOutcome{
			types.SourceSemanticScholar: {Status: StatusSuccess},
			types.SourceDBLP:            {Status: StatusEmpty},
		},
	}

	var buf bytes.Buffer
	FormatText(res, &buf)
	out := buf.String()

	for _, want := range []string{
		"Jane A. Smith",
		"ORCID:       0000-0002-1825-0097",
		"Papers:      161",
		"MIT",
		"dblp: empty",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTextUnresolved(t *testing.T) {
	var buf bytes.Buffer
	FormatText(Resolution{}, &buf)
	if !strings.Contains(buf.String(), "No author profile resolved.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	profile := mergeCluster(mergeFixture(), time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	res := Resolution{Profile: &profile}

	var buf bytes.Buffer
	if err := FormatJSON(res, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded types.AuthorProfile
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != profile.Name {
		t.Errorf("Name = %q, want %q", decoded.Name, profile.Name)
	}
}
