// Package fetch retrieves candidate documents over HTTP. Unusable pages
// (denylisted hosts, error statuses, unknown content) yield empty text so
// callers can treat them as "no candidate" rather than failures.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"referee/src/internal/httpx"
)

// Hosts that are never usable as sources: self-referential tooling,
// access-restricted, or link shorteners.
var defaultDenylist = []string{
	"://g.co/",
	"viaf.org/",
	"wmflabs.org",
	"www.google.com",
	"toolforge.org",
}

const defaultMaxBodyBytes = 2 << 20

// Fetcher retrieves raw page contents with a fixed identity string.
type Fetcher struct {
	client   httpx.Doer
	denylist []string
	maxBody  int64
	log      *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithExtraDenylist appends substrings to the built-in URL denylist.
func WithExtraDenylist(entries []string) Option {
	return func(f *Fetcher) {
		f.denylist = append(f.denylist, entries...)
	}
}

// WithMaxBodyBytes caps the number of response bytes read per page.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(log *zap.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// New returns a Fetcher using the given HTTP client.
func New(client httpx.Doer, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   client,
		denylist: append([]string(nil), defaultDenylist...),
		maxBody:  defaultMaxBodyBytes,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CleanURL undoes common wiki-text mangling: entity-encoded ampersands,
// stray whitespace, and raw spaces.
func CleanURL(raw string) string {
	u := strings.ReplaceAll(raw, "&amp;", "&")
	u = strings.TrimSpace(u)
	return strings.ReplaceAll(u, " ", "%20")
}

func (f *Fetcher) validate(rawURL string) error {
	for _, bad := range f.denylist {
		if strings.Contains(rawURL, bad) {
			return fmt.Errorf("fetch: denylisted url %q", rawURL)
		}
	}
	return nil
}

// Fetch GETs the URL and returns the body. Non-success statuses and
// responses without a content type return empty text with no error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := f.validate(rawURL); err != nil {
		return "", err
	}
	u := CleanURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	httpx.SetUA(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil
	}
	if resp.Header.Get("Content-Type") == "" {
		return "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Contents fetches the URL, absorbing every failure into empty text.
func (f *Fetcher) Contents(ctx context.Context, rawURL string) string {
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		f.log.Debug("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return ""
	}
	return body
}
