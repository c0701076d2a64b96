// Package wikibase models the subset of a Wikibase entity used for
// reference discovery: statements, references, sitelinks, and labels.
package wikibase

import "encoding/json"

// Snak datatypes that matter for statement selection.
const (
	DatatypeExternalID   = "external-id"
	DatatypeCommonsMedia = "commons-media"
)

// Datavalue types as they appear in wbgetentities output.
const (
	ValueTypeString      = "string"
	ValueTypeTime        = "time"
	ValueTypeMonolingual = "monolingualtext"
	ValueTypeEntityID    = "wikibase-entityid"
	ValueTypeQuantity    = "quantity"
	ValueTypeGlobeCoord  = "globecoordinate"
)

// Entity is one knowledge-base record. Read-only once loaded.
type Entity struct {
	ID        string                 `json:"id"`
	Labels    map[string]Term        `json:"labels"`
	Aliases   map[string][]Term      `json:"aliases"`
	Claims    map[string][]Statement `json:"claims"`
	Sitelinks map[string]Sitelink    `json:"sitelinks"`
}

// Term is a language-tagged string (label or alias).
type Term struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Sitelink maps a wiki identifier to a page title on that wiki.
type Sitelink struct {
	Site  string `json:"site"`
	Title string `json:"title"`
}

// Statement is one property-value assertion, optionally referenced.
type Statement struct {
	ID         string      `json:"id"`
	MainSnak   Snak        `json:"mainsnak"`
	References []Reference `json:"references,omitempty"`
}

// Reference is a set of property/snak pairs attached to a statement.
type Reference struct {
	Snaks map[string][]Snak `json:"snaks"`
}

// Snak is a single property-value pair.
type Snak struct {
	Property  string     `json:"property"`
	Datatype  string     `json:"datatype"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// DataValue is a tagged variant; Value is decoded per Type on access.
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// TimeValue is the payload of a time-typed datavalue.
// Time looks like "+1990-05-17T00:00:00Z"; Precision 9 is year, 11 is day.
type TimeValue struct {
	Time      string `json:"time"`
	Precision int    `json:"precision"`
}

// MonolingualValue is the payload of a monolingualtext datavalue.
type MonolingualValue struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type entityIDValue struct {
	ID string `json:"id"`
}

// AsString returns the string payload for string-typed values.
func (dv *DataValue) AsString() (string, bool) {
	if dv == nil || dv.Type != ValueTypeString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(dv.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// AsTime returns the time payload for time-typed values.
func (dv *DataValue) AsTime() (TimeValue, bool) {
	if dv == nil || dv.Type != ValueTypeTime {
		return TimeValue{}, false
	}
	var tv TimeValue
	if err := json.Unmarshal(dv.Value, &tv); err != nil {
		return TimeValue{}, false
	}
	return tv, true
}

// AsMonolingual returns the payload for monolingualtext-typed values.
func (dv *DataValue) AsMonolingual() (MonolingualValue, bool) {
	if dv == nil || dv.Type != ValueTypeMonolingual {
		return MonolingualValue{}, false
	}
	var mv MonolingualValue
	if err := json.Unmarshal(dv.Value, &mv); err != nil {
		return MonolingualValue{}, false
	}
	return mv, true
}

// AsEntityID returns the linked entity id for entity-typed values.
func (dv *DataValue) AsEntityID() (string, bool) {
	if dv == nil || dv.Type != ValueTypeEntityID {
		return "", false
	}
	var ev entityIDValue
	if err := json.Unmarshal(dv.Value, &ev); err != nil || ev.ID == "" {
		return "", false
	}
	return ev.ID, true
}

// AllClaims returns every statement on the entity in property-map order.
func (e *Entity) AllClaims() []Statement {
	var out []Statement
	for _, sts := range e.Claims {
		out = append(out, sts...)
	}
	return out
}

// ClaimsForProperty returns the statements for one property.
func (e *Entity) ClaimsForProperty(property string) []Statement {
	return e.Claims[property]
}

// StringValues returns the string datavalues of all claims for a property.
func (e *Entity) StringValues(property string) []string {
	var out []string
	for _, st := range e.Claims[property] {
		if s, ok := st.MainSnak.DataValue.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// HasTargetEntity reports whether any claim for the property links to target.
func (e *Entity) HasTargetEntity(property, target string) bool {
	for _, st := range e.Claims[property] {
		if id, ok := st.MainSnak.DataValue.AsEntityID(); ok && id == target {
			return true
		}
	}
	return false
}

// Label returns the entity label for a language, or "".
func (e *Entity) Label(language string) string {
	return e.Labels[language].Value
}

// AliasValues returns the alias strings for a language.
func (e *Entity) AliasValues(language string) []string {
	terms := e.Aliases[language]
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, t.Value)
	}
	return out
}
