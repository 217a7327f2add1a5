// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// diacriticFolder decomposes characters and drops combining marks, so
// "Müller" and "Muller" normalize to the same string.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldDiacritics(s string) string {
	out, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeName lowercases, folds diacritics, strips periods, and collapses
// whitespace. Initials like "J. Smith" and "J Smith" compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(foldDiacritics(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}

// normalizeInstitution applies the same folding to institution names.
func normalizeInstitution(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(foldDiacritics(s))), " ")
}

// normalizeORCID reduces any ORCID form (URL, spaced, unhyphenated) to the
// canonical 0000-0000-0000-0000 shape. Returns "" for values that do not
// contain a 16-character identifier.
func normalizeORCID(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ToUpper(strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s))
	if len(s) != 16 {
		return ""
	}
	return s[0:4] + "-" + s[4:8] + "-" + s[8:12] + "-" + s[12:16]
}

// recordsMatch applies the pairwise matching policy in strict precedence:
// ORCID equality, then name+institution, then name+field-of-study, then the
// name-only fallback. Two records carrying different ORCIDs never match —
// they are distinct people no matter what the weaker signals say.
func recordsMatch(a, b types.CandidateRecord, query types.SearchQuery) bool {
	oa, ob := normalizeORCID(a.ORCID), normalizeORCID(b.ORCID)
	if oa != "" && ob != "" {
		return oa == ob
	}

	// Every remaining rule requires normalized name equality.
	name := normalizeName(a.Name)
	if name == "" || name != normalizeName(b.Name) {
		return false
	}

	if institutionOverlap(a, b, query.Institution) {
		return true
	}
	if fieldOverlap(a, b, query.FieldOfStudy) {
		return true
	}
	return !contradicts(a, b, query)
}

// institutionOverlap reports whether an affiliation on either record
// overlaps the query's institution hint or an affiliation on the other
// record. Overlap is normalized equality or substring containment.
func institutionOverlap(a, b types.CandidateRecord, hint string) bool {
	h := normalizeInstitution(hint)
	if h != "" {
		for _, aff := range append(append([]types.Affiliation{}, a.Affiliations...), b.Affiliations...) {
			if institutionsOverlap(normalizeInstitution(aff.InstitutionName), h) {
				return true
			}
		}
	}
	for _, affA := range a.Affiliations {
		na := normalizeInstitution(affA.InstitutionName)
		if na == "" {
			continue
		}
		for _, affB := range b.Affiliations {
			if institutionsOverlap(na, normalizeInstitution(affB.InstitutionName)) {
				return true
			}
		}
	}
	return false
}

func institutionsOverlap(x, y string) bool {
	if x == "" || y == "" {
		return false
	}
	return x == y || strings.Contains(x, y) || strings.Contains(y, x)
}

// fieldOverlap reports whether the two records agree on a field of study:
// either the query hint appears in both records' field sets, or both
// records carry fields and the sets intersect.
func fieldOverlap(a, b types.CandidateRecord, hint string) bool {
	setA, setB := fieldSet(a.FieldsOfStudy), fieldSet(b.FieldsOfStudy)
	if h := strings.ToLower(strings.TrimSpace(hint)); h != "" && setA[h] && setB[h] {
		return true
	}
	for f := range setA {
		if setB[f] {
			return true
		}
	}
	return false
}

func fieldSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			set[f] = true
		}
	}
	return set
}

// contradicts reports disagreement that blocks the name-only fallback:
// differing emails (against each other or the query hint), or two non-empty
// affiliation sets with no institution overlap.
func contradicts(a, b types.CandidateRecord, query types.SearchQuery) bool {
	ea, eb := normalizeEmail(a.Email), normalizeEmail(b.Email)
	if ea != "" && eb != "" && ea != eb {
		return true
	}
	if hint := normalizeEmail(query.Email); hint != "" {
		if (ea != "" && ea != hint) || (eb != "" && eb != hint) {
			return true
		}
	}
	if len(a.Affiliations) > 0 && len(b.Affiliations) > 0 && !institutionOverlap(a, b, "") {
		return true
	}
	return false
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// buildClusters partitions the records into clusters via transitive closure
// of the pairwise matching policy. Cluster order follows input order of the
// earliest member, so the result is deterministic for a given record order.
func buildClusters(records []types.CandidateRecord, query types.SearchQuery) [][]types.CandidateRecord {
	n := len(records)
	if n == 0 {
		return nil
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[rj] = ri
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if recordsMatch(records[i], records[j], query) {
				union(i, j)
			}
		}
	}

	index := make(map[int]int)
	var clusters [][]types.CandidateRecord
	for i, r := range records {
		root := find(i)
		ci, ok := index[root]
		if !ok {
			ci = len(clusters)
			index[root] = ci
			clusters = append(clusters, nil)
		}
		clusters[ci] = append(clusters[ci], r)
	}
	return clusters
}

// selectCluster picks the cluster that answers the query: most distinct
// contributing sources, then highest total paper count, then the
// lexicographically smallest source-ID list so the choice never depends on
// adapter completion order.
func selectCluster(clusters [][]types.CandidateRecord) []types.CandidateRecord {
	if len(clusters) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(clusters); i++ {
		if betterCluster(clusters[i], clusters[best]) {
			best = i
		}
	}
	return clusters[best]
}

func betterCluster(a, b []types.CandidateRecord) bool {
	sa, sb := distinctSources(a), distinctSources(b)
	if len(sa) != len(sb) {
		return len(sa) > len(sb)
	}
	pa, pb := totalPaperCount(a), totalPaperCount(b)
	if pa != pb {
		return pa > pb
	}
	return strings.Join(sa, ",") < strings.Join(sb, ",")
}

func distinctSources(cluster []types.CandidateRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range cluster {
		id := string(r.SourceID)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func totalPaperCount(cluster []types.CandidateRecord) int {
	total := 0
	for _, r := range cluster {
		if r.PaperCount != nil {
			total += *r.PaperCount
		}
	}
	return total
}
