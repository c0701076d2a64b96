package referee

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"referee/src/internal/patterns"
	"referee/src/internal/wikibase"
)

// Reference property holding a plain source URL.
const propReferenceURL = "P854"

// Country-of-citizenship statements against this host are a known
// false-positive source and are never matched.
const (
	propCitizenship   = "P27"
	badCitizenshipURL = "www.invaluable.com"
)

// The context window on each side of a match.
const contextWindow = 60

// processStatement matches one statement against every candidate document
// and returns the raw (unmerged) candidate records.
func (e *Engine) processStatement(ctx context.Context, gen *patterns.Generator, st entityStatement, pool urlCandidates) ([]Candidate, error) {
	if st.id == "" {
		return nil, nil
	}

	var out []Candidate
	for _, cand := range pool {
		if statementReferencesCandidate(st.claim, &cand) {
			continue
		}
		if st.property == propCitizenship && strings.Contains(cand.URL, badCitizenshipURL) {
			continue
		}

		pats, err := gen.ForStatement(ctx, st.claim, cand.Language)
		if err != nil {
			return nil, err
		}
		for _, pat := range pats {
			if strings.TrimSpace(pat) == "" {
				continue
			}
			re, err := regexp.Compile(fmt.Sprintf(`\b(.{0,%d})\b(%s)\b(.{0,%d})\b`, contextWindow, pat, contextWindow))
			if err != nil {
				continue
			}
			m := re.FindStringSubmatch(cand.Text)
			if m == nil {
				continue
			}
			out = append(out, Candidate{
				StatementID: st.id,
				URL:         cand.URL,
				Property:    cand.Property,
				ExternalID:  cand.ExternalID,
				StatedIn:    cand.StatedIn,
				Language:    cand.Language,
				Texts:       []TextWindow{{Before: m[1], Match: m[2], After: m[3]}},
			})
		}
	}
	return out, nil
}

// statementReferencesCandidate reports whether the statement already cites
// this candidate: either its URL as a reference URL, or (for formatter
// candidates) the property/external-id pair itself.
func statementReferencesCandidate(claim *wikibase.Statement, cand *urlCandidate) bool {
	for _, ref := range claim.References {
		for _, snak := range ref.Snaks[propReferenceURL] {
			if u, ok := snak.DataValue.AsString(); ok && u == cand.URL {
				return true
			}
		}
		if cand.Source == SourceFormatter && cand.Property != "" {
			for _, snak := range ref.Snaks[cand.Property] {
				if s, ok := snak.DataValue.AsString(); ok && s == cand.ExternalID {
					return true
				}
			}
		}
	}
	return false
}
