package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResp struct {
	status      int
	contentType string
	body        string
}

type fakeHTTP struct {
	mu   sync.Mutex
	resp fakeResp
	err  error
	urls []string
}

func (f *fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.urls = append(f.urls, req.URL.String())
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	h := make(http.Header)
	if f.resp.contentType != "" {
		h.Set("Content-Type", f.resp.contentType)
	}
	return &http.Response{
		StatusCode: f.resp.status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(f.resp.body)),
	}, nil
}

func TestFetchSuccess(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 200, contentType: "text/html", body: "<html>hi</html>"}}
	f := New(doer)

	body, err := f.Fetch(context.Background(), "https://site.test/page")
	require.NoError(t, err)
	assert.Equal(t, "<html>hi</html>", body)
}

func TestFetchDenylisted(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 200, contentType: "text/html", body: "x"}}
	f := New(doer)

	for _, u := range []string{
		"https://g.co/abc",
		"https://viaf.org/viaf/123",
		"https://tools.wmflabs.org/thing",
		"https://www.google.com/search?q=x",
		"https://whatever.toolforge.org/x",
	} {
		_, err := f.Fetch(context.Background(), u)
		assert.Error(t, err, u)
	}
	assert.Empty(t, doer.urls, "denylisted urls are rejected before any request")
}

func TestFetchExtraDenylist(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 200, contentType: "text/html", body: "x"}}
	f := New(doer, WithExtraDenylist([]string{"blocked.example"}))

	_, err := f.Fetch(context.Background(), "https://blocked.example/page")
	assert.Error(t, err)
}

func TestFetchCleansURL(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 200, contentType: "text/html", body: "x"}}
	f := New(doer)

	_, err := f.Fetch(context.Background(), " https://site.test/a?x=1&amp;y=2 b ")
	require.NoError(t, err)
	require.Len(t, doer.urls, 1)
	assert.Equal(t, "https://site.test/a?x=1&y=2%20b", doer.urls[0])
}

func TestFetchNonSuccessIsEmpty(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 404, contentType: "text/html", body: "nope"}}
	f := New(doer)

	body, err := f.Fetch(context.Background(), "https://site.test/gone")
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFetchMissingContentTypeIsEmpty(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 200, body: "raw"}}
	f := New(doer)

	body, err := f.Fetch(context.Background(), "https://site.test/blob")
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFetchBodyCap(t *testing.T) {
	doer := &fakeHTTP{resp: fakeResp{status: 200, contentType: "text/html", body: strings.Repeat("a", 100)}}
	f := New(doer, WithMaxBodyBytes(10))

	body, err := f.Fetch(context.Background(), "https://site.test/big")
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestContentsAbsorbsErrors(t *testing.T) {
	doer := &fakeHTTP{err: io.ErrUnexpectedEOF}
	f := New(doer)

	assert.Empty(t, f.Contents(context.Background(), "https://site.test/down"))
	assert.Empty(t, f.Contents(context.Background(), "https://viaf.org/viaf/1"))
}

func TestCleanURL(t *testing.T) {
	assert.Equal(t, "https://a.test/?x=1&y=2", CleanURL("https://a.test/?x=1&amp;y=2"))
	assert.Equal(t, "https://a.test/a%20b", CleanURL("  https://a.test/a b  "))
}
