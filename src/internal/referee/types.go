package referee

// Source identifies how a candidate URL was discovered.
type Source string

const (
	SourceWikiLink  Source = "wiki-outbound-link"
	SourceDirect    Source = "direct-website"
	SourceFormatter Source = "external-id-formatter"
)

// urlCandidate is a fetched, normalized document with its provenance.
type urlCandidate struct {
	URL        string
	Source     Source
	Property   string
	ExternalID string
	StatedIn   string
	Language   string
	Text       string
}

// urlCandidates is keyed by URL; the pool for one entity holds each URL once.
type urlCandidates map[string]urlCandidate

// TextWindow is one matched substring with bounded context on both sides.
type TextWindow struct {
	Before string `json:"before"`
	Match  string `json:"regexp_match"`
	After  string `json:"after"`
}

// Candidate is one proposed reference for one statement, with every
// distinct text window that supported it.
type Candidate struct {
	StatementID string       `json:"statement_id"`
	URL         string       `json:"url"`
	Property    string       `json:"property,omitempty"`
	ExternalID  string       `json:"external_id,omitempty"`
	StatedIn    string       `json:"stated_in,omitempty"`
	Language    string       `json:"language"`
	Texts       []TextWindow `json:"texts"`
}

// sameKey reports merge equality. Language is informational only and is
// deliberately not part of the key.
func (c *Candidate) sameKey(o *Candidate) bool {
	return c.StatementID == o.StatementID &&
		c.URL == o.URL &&
		c.Property == o.Property &&
		c.ExternalID == o.ExternalID
}

func (c *Candidate) less(o *Candidate) bool {
	if c.StatementID != o.StatementID {
		return c.StatementID < o.StatementID
	}
	if c.URL != o.URL {
		return c.URL < o.URL
	}
	if c.Property != o.Property {
		return c.Property < o.Property
	}
	if c.ExternalID != o.ExternalID {
		return c.ExternalID < o.ExternalID
	}
	return c.Language < o.Language
}

func windowLess(a, b TextWindow) bool {
	if a.Before != b.Before {
		return a.Before < b.Before
	}
	if a.Match != b.Match {
		return a.Match < b.Match
	}
	return a.After < b.After
}
