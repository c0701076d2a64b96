// Package patterns synthesizes literal search strings for a statement's
// value: dates in several locale spellings, plain strings, and the
// labels/aliases of linked entities.
package patterns

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"referee/src/internal/wikibase"
)

// Time precisions used by the knowledge base.
const (
	precisionYear = 9
	precisionDay  = 11
)

// Labels and aliases shorter than this are too ambiguous to search for.
const minEntityPattern = 3

// Language-neutral label bucket.
const mulLanguage = "mul"

var reTimePrefix = regexp.MustCompile(`^[+-]?0*(\d+)-(\d\d)-(\d\d)`)

// Generator produces search patterns, resolving linked entities through a
// request-scoped container.
type Generator struct {
	entities *wikibase.Container
}

// NewGenerator returns a Generator backed by the container.
func NewGenerator(entities *wikibase.Container) *Generator {
	return &Generator{entities: entities}
}

// ForStatement returns zero or more search patterns for the statement's
// main value, rendered for the target language. Unsupported value types
// yield no patterns.
func (g *Generator) ForStatement(ctx context.Context, st *wikibase.Statement, language string) ([]string, error) {
	dv := st.MainSnak.DataValue
	if dv == nil {
		return nil, nil
	}

	switch dv.Type {
	case wikibase.ValueTypeTime:
		tv, ok := dv.AsTime()
		if !ok {
			return nil, nil
		}
		return timePatterns(tv, language), nil

	case wikibase.ValueTypeString:
		s, _ := dv.AsString()
		return []string{s}, nil

	case wikibase.ValueTypeMonolingual:
		// The stored language tag is ignored: matching runs against the
		// candidate page's guessed language.
		mv, ok := dv.AsMonolingual()
		if !ok {
			return nil, nil
		}
		return []string{mv.Text}, nil

	case wikibase.ValueTypeEntityID:
		id, ok := dv.AsEntityID()
		if !ok {
			return nil, nil
		}
		return g.entityPatterns(ctx, id, language)

	default:
		// Quantities and coordinates are not text-searchable this way.
		return nil, nil
	}
}

func timePatterns(tv wikibase.TimeValue, language string) []string {
	caps := reTimePrefix.FindStringSubmatch(tv.Time)
	if caps == nil {
		return nil
	}
	year, month, day := caps[1], caps[2], caps[3]

	switch tv.Precision {
	case precisionYear:
		return []string{year}
	case precisionDay:
		monthNum, _ := strconv.Atoi(month)
		dayNum, _ := strconv.Atoi(day)
		out := []string{year + "-" + month + "-" + day}
		return append(out, localeDates(language, year, monthNum, dayNum)...)
	}
	return nil
}

func (g *Generator) entityPatterns(ctx context.Context, id, language string) ([]string, error) {
	target, err := g.entities.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Labels first, then aliases: the mul label is the strongest signal.
	candidates := g.orderedNames(target, language)

	var out []string
	for _, name := range candidates {
		quoted := regexp.QuoteMeta(strings.TrimSpace(name))
		if len(quoted) < minEntityPattern {
			continue
		}
		out = append(out, quoted)
	}
	return out, nil
}

func (g *Generator) orderedNames(e *wikibase.Entity, language string) []string {
	var names []string
	if mul := e.Label(mulLanguage); mul != "" {
		names = append(names, mul)
	}
	if label := e.Label(language); label != "" {
		names = append(names, label)
	}
	return append(names, e.AliasValues(language)...)
}
