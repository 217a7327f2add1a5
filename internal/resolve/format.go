// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// FormatText writes a human-readable summary of a resolution to w.
func FormatText(res Resolution, w io.Writer) {
	p := res.Profile
	if p == nil {
		fmt.Fprintln(w, "No author profile resolved.")
		return
	}

	fmt.Fprintf(w, "%s\n", p.Name)
	fmt.Fprintln(w, strings.Repeat("-", len(p.Name)))
	fmt.Fprintf(w, "Author ID:   %s\n", p.AuthorID)
	if p.ORCID != "" {
		fmt.Fprintf(w, "ORCID:       %s\n", p.ORCID)
	}
	if p.HomepageURL != "" {
		fmt.Fprintf(w, "Homepage:    %s\n", p.HomepageURL)
	}
	if p.Email != "" {
		fmt.Fprintf(w, "Email:       %s\n", p.Email)
	}
	if p.HIndex != nil {
		fmt.Fprintf(w, "h-index:     %d\n", *p.HIndex)
	}
	if p.PaperCount != nil {
		fmt.Fprintf(w, "Papers:      %d\n", *p.PaperCount)
	}
	if p.CitationCount != nil {
		fmt.Fprintf(w, "Citations:   %d\n", *p.CitationCount)
	}
	if len(p.Affiliations) > 0 {
		fmt.Fprintf(w, "Affiliations:\n")
		for _, aff := range p.Affiliations {
			line := "  - " + aff.InstitutionName
			if aff.Country != "" {
				line += " (" + aff.Country + ")"
			}
			if !aff.StartDate.IsZero() {
				line += " " + aff.StartDate.Format("2006")
				if aff.EndDate.IsZero() {
					line += "-"
				} else {
					line += "-" + aff.EndDate.Format("2006")
				}
			}
			fmt.Fprintln(w, line)
		}
	}
	if len(p.FieldsOfStudy) > 0 {
		fmt.Fprintf(w, "Fields:      %s\n", strings.Join(p.FieldsOfStudy, ", "))
	}

	srcs := make([]string, len(p.Sources))
	for i, s := range p.Sources {
		srcs[i] = string(s)
	}
	fmt.Fprintf(w, "Sources:     %s\n", strings.Join(srcs, ", "))
	fmt.Fprintf(w, "Confidence:  %.2f\n", p.ConfidenceScore)

	// Source statuses other than success, for the curious.
	for _, id := range types.AllSources {
		if o, ok := res.Outcomes[id]; ok && o.Status != StatusSuccess {
			fmt.Fprintf(w, "  %s: %s\n", id, o.Status)
		}
	}
}

// FormatJSON writes the merged profile as indented JSON to w.
func FormatJSON(res Resolution, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Profile)
}
