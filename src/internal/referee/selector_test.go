package referee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"referee/src/internal/wikibase"
)

func TestStatementsNeedingReferences(t *testing.T) {
	dob := timeStatement("Q1$DOB", "P569", "+1990-05-17T00:00:00Z", 11)
	taxon := stringStatement("Q1$TAXON", "P225", "Panthera leo")
	extID := externalIDStatement("Q1$EXT", "P999", "ABC123")
	image := wikibase.Statement{
		ID:       "Q1$IMG",
		MainSnak: wikibase.Snak{Property: "P18", Datatype: wikibase.DatatypeCommonsMedia},
	}
	loader := &fakeLoader{entities: map[string]*wikibase.Entity{
		"Q1": {ID: "Q1", Claims: map[string][]wikibase.Statement{
			"P569": {dob},
			"P225": {taxon},
			"P999": {extID},
			"P18":  {image},
		}},
	}}
	e := newTestEngine(loader, &routeHTTP{})

	got, err := e.statementsNeedingReferences(context.Background(), wikibase.NewContainer(loader), "Q1")
	require.NoError(t, err)

	require.Len(t, got, 1, "exempt properties, external ids, and media are skipped")
	assert.Equal(t, "Q1$DOB", got[0].id)
	assert.Equal(t, "P569", got[0].property)
	assert.Equal(t, "Q1", got[0].entity)
}

func TestIsSupportedEntity(t *testing.T) {
	loader := &fakeLoader{entities: map[string]*wikibase.Entity{
		"Q1": {ID: "Q1", Claims: map[string][]wikibase.Statement{
			"P31": {itemStatement("Q1$I", "P31", "Q5")},
		}},
		"Q2": {ID: "Q2", Claims: map[string][]wikibase.Statement{
			"P31": {itemStatement("Q2$I", "P31", "Q4167410")},
		}},
	}}
	e := newTestEngine(loader, &routeHTTP{})

	ok, err := e.isSupportedEntity(context.Background(), wikibase.NewContainer(loader), "Q1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.isSupportedEntity(context.Background(), wikibase.NewContainer(loader), "Q2")
	require.NoError(t, err)
	assert.False(t, ok, "disambiguation pages are not supported")

	_, err = e.isSupportedEntity(context.Background(), wikibase.NewContainer(loader), "Q404")
	assert.Error(t, err)
}
