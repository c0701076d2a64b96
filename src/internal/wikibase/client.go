package wikibase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"referee/src/internal/httpx"
)

// DefaultEndpoint is the production Wikidata action API.
const DefaultEndpoint = "https://www.wikidata.org/w/api.php"

// wbgetentities accepts at most this many ids per call.
const maxBatchIDs = 50

// ErrNotFound is returned when the API has no entity for an id.
var ErrNotFound = fmt.Errorf("wikibase: entity not found")

// Loader loads entities from a knowledge base.
type Loader interface {
	LoadEntity(ctx context.Context, id string) (*Entity, error)
	LoadEntities(ctx context.Context, ids []string) (map[string]*Entity, error)
}

// APIClient loads entities through the wbgetentities action API.
type APIClient struct {
	endpoint string
	client   httpx.Doer
}

// NewAPIClient returns a Loader for the given action API endpoint.
func NewAPIClient(endpoint string, client httpx.Doer) *APIClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &APIClient{endpoint: endpoint, client: client}
}

type getEntitiesResponse struct {
	Entities map[string]json.RawMessage `json:"entities"`
	Error    *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// LoadEntity loads a single entity.
func (c *APIClient) LoadEntity(ctx context.Context, id string) (*Entity, error) {
	m, err := c.LoadEntities(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	e, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// LoadEntities loads a batch of entities, splitting into API-sized chunks.
// Missing ids are absent from the result, not errors.
func (c *APIClient) LoadEntities(ctx context.Context, ids []string) (map[string]*Entity, error) {
	out := make(map[string]*Entity, len(ids))
	for start := 0; start < len(ids); start += maxBatchIDs {
		end := start + maxBatchIDs
		if end > len(ids) {
			end = len(ids)
		}
		if err := c.loadBatch(ctx, ids[start:end], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *APIClient) loadBatch(ctx context.Context, ids []string, out map[string]*Entity) error {
	if len(ids) == 0 {
		return nil
	}
	q := url.Values{}
	q.Set("action", "wbgetentities")
	q.Set("ids", strings.Join(ids, "|"))
	q.Set("props", "labels|aliases|claims|sitelinks")
	q.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetUA(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("wikibase: http %d: %s", resp.StatusCode, string(b))
	}

	var body getEntitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("wikibase: decode: %w", err)
	}
	if body.Error != nil {
		return fmt.Errorf("wikibase: api error %s: %s", body.Error.Code, body.Error.Info)
	}

	for id, raw := range body.Entities {
		// Missing entities come back as {"id":"Qx","missing":""}.
		var probe struct {
			Missing *string `json:"missing"`
		}
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Missing != nil {
			continue
		}
		var e Entity
		if err := json.Unmarshal(raw, &e); err != nil {
			return fmt.Errorf("wikibase: decode entity %s: %w", id, err)
		}
		if e.ID == "" {
			e.ID = id
		}
		out[e.ID] = &e
	}
	return nil
}
