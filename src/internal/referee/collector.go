package referee

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"referee/src/internal/htmltext"
	"referee/src/internal/lang"
	"referee/src/internal/stringsx"
	"referee/src/internal/wikibase"
)

// Properties consulted while collecting candidate URLs.
const (
	propOfficialWebsite    = "P856"
	propDescribedAtURL     = "P973"
	propFormatterURL       = "P1630"
	propApplicableStatedIn = "P9073"
)

// Links back into the wiki family would make the knowledge base cite itself.
var reWikiFamily = regexp.MustCompile(`\b(wikipedia|wikimedia|wik[a-z-]+)\.org/`)

// collectCandidates unions the three discovery strategies by URL. The
// first candidate inserted for a URL wins; later duplicates are skipped.
func (e *Engine) collectCandidates(ctx context.Context, entities *wikibase.Container, id string) (urlCandidates, error) {
	item, err := entities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(item.Claims) == 0 {
		return urlCandidates{}, nil
	}

	var fromWikis, direct, external urlCandidates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fromWikis = e.candidatesFromWikis(gctx, item)
		return nil
	})
	g.Go(func() error {
		direct = e.directWebsiteCandidates(gctx, item)
		return nil
	})
	g.Go(func() error {
		external = e.externalIDCandidates(gctx, entities, item)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pool := urlCandidates{}
	for _, batch := range []urlCandidates{fromWikis, direct, external} {
		for u, c := range batch {
			if _, seen := pool[u]; seen {
				continue
			}
			pool[u] = c
		}
	}

	e.addStatedIn(ctx, entities, pool)
	return pool, nil
}

// candidatesFromWikis walks the entity's sitelinks, lists each page's
// outbound external links, and fetches the usable ones.
func (e *Engine) candidatesFromWikis(ctx context.Context, item *wikibase.Entity) urlCandidates {
	var listings []string
	for _, sl := range item.Sitelinks {
		// Poor man's namespace detection.
		if strings.Contains(sl.Title, ":") {
			continue
		}
		server := webServerForWiki(sl.Site)
		listings = append(listings, fmt.Sprintf(
			"https://%s/w/api.php?action=query&prop=extlinks&ellimit=500&elexpandurl=1&format=json&titles=%s",
			server, url.QueryEscape(strings.ReplaceAll(sl.Title, " ", "_"))))
	}

	pages := make([][]string, len(listings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fetchLimit)
	for i, listing := range listings {
		g.Go(func() error {
			pages[i] = e.externalLinksForPage(gctx, listing)
			return nil
		})
	}
	_ = g.Wait()

	seen := map[string]bool{}
	var links []string
	for _, page := range pages {
		for _, link := range page {
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}
	}

	e.log.Debug("wiki outbound links collected",
		zap.Int("pages", len(listings)), zap.Int("links", len(links)))
	return e.fetchCandidates(ctx, links, func(u string) urlCandidate {
		return urlCandidate{URL: u, Source: SourceWikiLink}
	})
}

type extlinksResponse struct {
	Query struct {
		Pages map[string]struct {
			Extlinks []struct {
				URL string `json:"*"`
			} `json:"extlinks"`
		} `json:"pages"`
	} `json:"query"`
}

// externalLinksForPage fetches one extlinks listing and filters out
// non-http links and wiki-family domains.
func (e *Engine) externalLinksForPage(ctx context.Context, listingURL string) []string {
	body := e.fetcher.Contents(ctx, listingURL)
	if body == "" {
		return nil
	}
	var resp extlinksResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		e.log.Debug("extlinks decode failed", zap.String("url", listingURL), zap.Error(err))
		return nil
	}

	var out []string
	for _, page := range resp.Query.Pages {
		for _, link := range page.Extlinks {
			u := link.URL
			if !strings.HasPrefix(u, "http") {
				continue
			}
			if reWikiFamily.MatchString(u) {
				continue
			}
			out = append(out, u)
		}
	}
	return out
}

// directWebsiteCandidates fetches the entity's own official-website and
// described-at URLs.
func (e *Engine) directWebsiteCandidates(ctx context.Context, item *wikibase.Entity) urlCandidates {
	websites := append(item.StringValues(propOfficialWebsite), item.StringValues(propDescribedAtURL)...)
	websites = stringsx.SortedUnique(websites)
	return e.fetchCandidates(ctx, websites, func(u string) urlCandidate {
		return urlCandidate{URL: u, Source: SourceDirect}
	})
}

// externalIDCandidates resolves each external-id statement through its
// property's formatter URL.
func (e *Engine) externalIDCandidates(ctx context.Context, entities *wikibase.Container, item *wikibase.Entity) urlCandidates {
	type propID struct{ property, id string }
	var pairs []propID
	seenPair := map[propID]bool{}
	for property, claims := range item.Claims {
		for i := range claims {
			snak := &claims[i].MainSnak
			if snak.Datatype != wikibase.DatatypeExternalID {
				continue
			}
			extID, ok := snak.DataValue.AsString()
			if !ok {
				continue
			}
			p := propID{property, extID}
			if seenPair[p] {
				continue
			}
			seenPair[p] = true
			pairs = append(pairs, p)
		}
	}
	if len(pairs) == 0 {
		return urlCandidates{}
	}

	var properties []string
	for _, p := range pairs {
		properties = append(properties, p.property)
	}
	if err := entities.EnsureLoaded(ctx, stringsx.SortedUnique(properties)); err != nil {
		e.log.Warn("loading external-id properties failed", zap.Error(err))
		return urlCandidates{}
	}

	urlInUse := map[string]bool{}
	type resolved struct {
		url        string
		property   string
		externalID string
	}
	var targets []resolved
	for _, p := range pairs {
		prop, ok := entities.Peek(p.property)
		if !ok {
			continue
		}
		formatters := prop.StringValues(propFormatterURL)
		if len(formatters) == 0 {
			continue
		}
		u := strings.ReplaceAll(formatters[0], "$1", p.id)
		if urlInUse[u] {
			continue
		}
		urlInUse[u] = true
		targets = append(targets, resolved{u, p.property, p.id})
	}

	out := urlCandidates{}
	results := make([]*urlCandidate, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fetchLimit)
	for i, t := range targets {
		g.Go(func() error {
			results[i] = e.buildCandidate(gctx, urlCandidate{
				URL:        t.url,
				Source:     SourceFormatter,
				Property:   t.property,
				ExternalID: t.externalID,
			})
			return nil
		})
	}
	_ = g.Wait()
	for _, c := range results {
		if c != nil {
			out[c.URL] = *c
		}
	}
	return out
}

// fetchCandidates fetches a list of URLs under the shared concurrency
// limit; failed or empty pages contribute nothing.
func (e *Engine) fetchCandidates(ctx context.Context, urls []string, seed func(string) urlCandidate) urlCandidates {
	results := make([]*urlCandidate, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fetchLimit)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = e.buildCandidate(gctx, seed(u))
			return nil
		})
	}
	_ = g.Wait()

	out := urlCandidates{}
	for _, c := range results {
		if c != nil {
			out[c.URL] = *c
		}
	}
	return out
}

// buildCandidate fetches and normalizes one page. Empty contents mean the
// URL yields no candidate.
func (e *Engine) buildCandidate(ctx context.Context, seed urlCandidate) *urlCandidate {
	contents := e.fetcher.Contents(ctx, seed.URL)
	if contents == "" {
		return nil
	}
	seed.Text = htmltext.Flatten(contents)
	seed.Language = lang.Guess(seed.Text)
	return &seed
}

// addStatedIn attaches a "stated in" entity to formatter-derived
// candidates whose property declares one. Best effort; absence is fine.
func (e *Engine) addStatedIn(ctx context.Context, entities *wikibase.Container, pool urlCandidates) {
	var properties []string
	for _, c := range pool {
		if c.Property != "" && !entities.Has(c.Property) {
			properties = append(properties, c.Property)
		}
	}
	if len(properties) > 0 {
		if err := entities.EnsureLoaded(ctx, stringsx.SortedUnique(properties)); err != nil {
			e.log.Warn("loading stated-in properties failed", zap.Error(err))
			return
		}
	}

	for u, c := range pool {
		if c.Property == "" {
			continue
		}
		prop, ok := entities.Peek(c.Property)
		if !ok {
			continue
		}
		claims := prop.ClaimsForProperty(propApplicableStatedIn)
		if len(claims) == 0 {
			continue
		}
		if id, ok := claims[0].MainSnak.DataValue.AsEntityID(); ok {
			c.StatedIn = id
			pool[u] = c
		}
	}
}

// webServerForWiki maps a wiki id like "enwiki" or "dewikisource" to the
// host serving its read API.
func webServerForWiki(wiki string) string {
	language := strings.Split(wiki, "wik")[0]
	switch {
	case strings.HasSuffix(wiki, "wikisource"):
		return language + ".wikisource.org"
	case strings.HasSuffix(wiki, "wiktionary"):
		return language + ".wiktionary.org"
	case strings.HasSuffix(wiki, "wikiquote"):
		return language + ".wikiquote.org"
	default:
		return language + ".wikipedia.org"
	}
}
