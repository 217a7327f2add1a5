// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// priorityIndex ranks a source for scalar-field merging; lower wins.
func priorityIndex(id types.SourceID) int {
	for i, s := range types.AllSources {
		if s == id {
			return i
		}
	}
	return len(types.AllSources)
}

// mergeCluster collapses one cluster into the canonical profile. The rules
// are order-insensitive: records are first sorted by source priority, scalar
// identity fields take the first non-empty value in that order, numeric
// metrics take the maximum, and set-valued fields take the union. Merging
// the same records again yields an identical profile apart from LastUpdated.
func mergeCluster(cluster []types.CandidateRecord, now time.Time) types.AuthorProfile {
	ordered := make([]types.CandidateRecord, len(cluster))
	copy(ordered, cluster)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := priorityIndex(ordered[i].SourceID), priorityIndex(ordered[j].SourceID)
		if pi != pj {
			return pi < pj
		}
		return ordered[i].ExternalID < ordered[j].ExternalID
	})

	p := types.AuthorProfile{
		Name:        ordered[0].Name,
		LastUpdated: now,
	}

	for _, r := range ordered {
		if p.ORCID == "" && r.ORCID != "" {
			p.ORCID = normalizeORCID(r.ORCID)
		}
		if p.HomepageURL == "" && r.HomepageURL != "" {
			p.HomepageURL = r.HomepageURL
		}
		if p.Email == "" && r.Email != "" {
			p.Email = r.Email
		}
		if p.ProfileImageURL == "" && r.ProfileImageURL != "" {
			p.ProfileImageURL = r.ProfileImageURL
		}
		p.HIndex = maxCount(p.HIndex, r.HIndex)
		p.PaperCount = maxCount(p.PaperCount, r.PaperCount)
		p.CitationCount = maxCount(p.CitationCount, r.CitationCount)
	}

	p.FieldsOfStudy = mergeFields(ordered)
	p.Affiliations = mergeAffiliations(ordered)
	p.Sources = mergeSources(ordered)
	p.AuthorID = synthesizeAuthorID(p.ORCID, p.Name, ordered)
	return p
}

// maxCount keeps the larger of two optional counts.
func maxCount(a, b *int) *int {
	if b == nil {
		return a
	}
	if a == nil || *b > *a {
		v := *b
		return &v
	}
	return a
}

// mergeFields unions fields of study across the cluster, deduplicating
// case-insensitively and keeping the casing of the first occurrence in
// priority order. Sorted for a deterministic output.
func mergeFields(ordered []types.CandidateRecord) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, r := range ordered {
		for _, f := range r.FieldsOfStudy {
			key := strings.ToLower(strings.TrimSpace(f))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		return strings.ToLower(fields[i]) < strings.ToLower(fields[j])
	})
	return fields
}

// mergeAffiliations unions affiliations, collapsing duplicates that share a
// normalized institution name and start date. Ongoing affiliations (zero end
// date) sort first, then by start date descending, then by name.
func mergeAffiliations(ordered []types.CandidateRecord) []types.Affiliation {
	type affKey struct {
		name  string
		start time.Time
	}
	seen := make(map[affKey]int)
	var merged []types.Affiliation
	for _, r := range ordered {
		for _, aff := range r.Affiliations {
			name := normalizeInstitution(aff.InstitutionName)
			if name == "" {
				continue
			}
			key := affKey{name: name, start: aff.StartDate}
			if idx, ok := seen[key]; ok {
				// Fill gaps on the kept entry from the duplicate.
				if merged[idx].InstitutionID == "" {
					merged[idx].InstitutionID = aff.InstitutionID
				}
				if merged[idx].Country == "" {
					merged[idx].Country = aff.Country
				}
				if merged[idx].EndDate.IsZero() && !aff.EndDate.IsZero() {
					merged[idx].EndDate = aff.EndDate
				}
				continue
			}
			seen[key] = len(merged)
			merged = append(merged, aff)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		oi, oj := merged[i].EndDate.IsZero(), merged[j].EndDate.IsZero()
		if oi != oj {
			return oi
		}
		if !merged[i].StartDate.Equal(merged[j].StartDate) {
			return merged[i].StartDate.After(merged[j].StartDate)
		}
		return normalizeInstitution(merged[i].InstitutionName) < normalizeInstitution(merged[j].InstitutionName)
	})
	return merged
}

// mergeSources returns the sorted, deduplicated contributing source IDs.
func mergeSources(ordered []types.CandidateRecord) []types.SourceID {
	seen := make(map[types.SourceID]bool)
	var ids []types.SourceID
	for _, r := range ordered {
		if !seen[r.SourceID] {
			seen[r.SourceID] = true
			ids = append(ids, r.SourceID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// synthesizeAuthorID derives a deterministic author ID: the canonical ORCID
// when one exists, otherwise a slug of the normalized name plus a digest of
// the contributing external IDs. Stable for identical inputs within one
// resolution; not stable across the sources' own ID churn.
func synthesizeAuthorID(orcid, name string, cluster []types.CandidateRecord) string {
	if orcid != "" {
		return orcid
	}

	ids := make([]string, 0, len(cluster))
	for _, r := range cluster {
		ids = append(ids, fmt.Sprintf("%s:%s", r.SourceID, r.ExternalID))
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, "\n")))
	slug := strings.ReplaceAll(normalizeName(name), " ", "-")
	if slug == "" {
		slug = "author"
	}
	return slug + "-" + hex.EncodeToString(sum[:])[:12]
}
