package referee

import (
	"context"

	"referee/src/internal/wikibase"
)

// Properties where references are never expected.
var exemptProperties = map[string]bool{
	"P225":  true, // taxon name
	"P373":  true, // Commons category
	"P1472": true, // Commons Creator page
	"P1889": true, // different from
}

// Entity types that are never processed. P31 targets.
var unsupportedMarkers = []struct {
	property string
	target   string
}{
	{"P31", "Q13442814"}, // scholarly article
	{"P31", "Q16521"},    // taxon
	{"P31", "Q4167836"},  // category
	{"P31", "Q4167410"},  // disambiguation page
	{"P31", "Q5296"},     // main page
}

// entityStatement is one statement selected for reference discovery.
type entityStatement struct {
	entity   string
	property string
	id       string
	claim    *wikibase.Statement
}

// isSupportedEntity reports whether the entity is eligible at all.
// Certain entity classes are self-describing or unreferenceable.
func (e *Engine) isSupportedEntity(ctx context.Context, entities *wikibase.Container, id string) (bool, error) {
	item, err := entities.Get(ctx, id)
	if err != nil {
		return false, err
	}
	for _, m := range unsupportedMarkers {
		if item.HasTargetEntity(m.property, m.target) {
			return false, nil
		}
	}
	return true, nil
}

// statementsNeedingReferences selects the entity's statements eligible for
// automated reference discovery. External-id and media statements are
// self-evident; exempt properties never carry references.
func (e *Engine) statementsNeedingReferences(ctx context.Context, entities *wikibase.Container, id string) ([]entityStatement, error) {
	item, err := entities.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var out []entityStatement
	for property, claims := range item.Claims {
		if exemptProperties[property] {
			continue
		}
		for i := range claims {
			claim := &claims[i]
			dt := claim.MainSnak.Datatype
			if dt == wikibase.DatatypeExternalID || dt == wikibase.DatatypeCommonsMedia {
				continue
			}
			out = append(out, entityStatement{
				entity:   id,
				property: property,
				id:       claim.ID,
				claim:    claim,
			})
		}
	}
	return out, nil
}
