package referee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"referee/src/internal/fetch"
	"referee/src/internal/wikibase"
)

// fakeLoader serves entities from a map, counting loads.
type fakeLoader struct {
	mu       sync.Mutex
	entities map[string]*wikibase.Entity
	loads    int
}

func (f *fakeLoader) LoadEntity(_ context.Context, id string) (*wikibase.Entity, error) {
	f.mu.Lock()
	f.loads++
	f.mu.Unlock()
	e, ok := f.entities[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", wikibase.ErrNotFound, id)
	}
	return e, nil
}

func (f *fakeLoader) LoadEntities(_ context.Context, ids []string) (map[string]*wikibase.Entity, error) {
	f.mu.Lock()
	f.loads++
	f.mu.Unlock()
	out := make(map[string]*wikibase.Entity)
	for _, id := range ids {
		if e, ok := f.entities[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

// route serves a fixed body for URLs containing substr.
type route struct {
	substr string
	status int
	body   string
}

// routeHTTP is a concurrency-safe fake HTTP client with a route table.
type routeHTTP struct {
	mu     sync.Mutex
	routes []route
	urls   []string
}

func (d *routeHTTP) Do(req *http.Request) (*http.Response, error) {
	u := req.URL.String()
	d.mu.Lock()
	d.urls = append(d.urls, u)
	d.mu.Unlock()

	for _, r := range d.routes {
		if strings.Contains(u, r.substr) {
			h := make(http.Header)
			h.Set("Content-Type", "text/html")
			return &http.Response{
				StatusCode: r.status,
				Header:     h,
				Body:       io.NopCloser(strings.NewReader(r.body)),
			}, nil
		}
	}
	return &http.Response{
		StatusCode: 404,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func (d *routeHTTP) requested() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}

func newTestEngine(loader *fakeLoader, doer *routeHTTP) *Engine {
	return New(loader, fetch.New(doer))
}

// --- entity builders ---

func rawJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func stringSnak(property, value string) wikibase.Snak {
	return wikibase.Snak{
		Property:  property,
		DataValue: &wikibase.DataValue{Type: wikibase.ValueTypeString, Value: rawJSON(value)},
	}
}

func stringStatement(id, property, value string) wikibase.Statement {
	return wikibase.Statement{ID: id, MainSnak: stringSnak(property, value)}
}

func urlStatement(id, property, value string) wikibase.Statement {
	st := stringStatement(id, property, value)
	st.MainSnak.Datatype = "url"
	return st
}

func externalIDStatement(id, property, value string) wikibase.Statement {
	st := stringStatement(id, property, value)
	st.MainSnak.Datatype = wikibase.DatatypeExternalID
	return st
}

func timeStatement(id, property, time string, precision int) wikibase.Statement {
	return wikibase.Statement{
		ID: id,
		MainSnak: wikibase.Snak{
			Property: property,
			Datatype: "time",
			DataValue: &wikibase.DataValue{
				Type:  wikibase.ValueTypeTime,
				Value: rawJSON(map[string]any{"time": time, "precision": precision}),
			},
		},
	}
}

func itemStatement(id, property, target string) wikibase.Statement {
	return wikibase.Statement{
		ID: id,
		MainSnak: wikibase.Snak{
			Property: property,
			Datatype: "wikibase-item",
			DataValue: &wikibase.DataValue{
				Type:  wikibase.ValueTypeEntityID,
				Value: rawJSON(map[string]any{"entity-type": "item", "id": target}),
			},
		},
	}
}
