package referee

import "sort"

// sortCandidates orders records by (statement id, URL, property,
// external id, language) so equal-key records are adjacent and output
// order is deterministic.
func sortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].less(&cands[j])
	})
}

// mergeCandidates collapses adjacent records with the same key into one,
// unioning their text windows. Input must be sorted. Idempotent: merged
// output passed back through merges to itself.
func mergeCandidates(input []Candidate) []Candidate {
	if len(input) == 0 {
		return []Candidate{}
	}

	out := []Candidate{input[0]}
	for _, cur := range input[1:] {
		last := &out[len(out)-1]
		if cur.sameKey(last) {
			last.Texts = append(last.Texts, cur.Texts...)
		} else {
			out = append(out, cur)
		}
	}

	for i := range out {
		out[i].Texts = uniqueWindows(out[i].Texts)
	}
	return out
}

func uniqueWindows(ws []TextWindow) []TextWindow {
	sort.Slice(ws, func(i, j int) bool { return windowLess(ws[i], ws[j]) })
	n := 0
	for i, w := range ws {
		if i > 0 && w == ws[n-1] {
			continue
		}
		ws[n] = w
		n++
	}
	return ws[:n]
}
