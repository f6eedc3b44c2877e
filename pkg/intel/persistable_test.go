package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkSaveInsertsAndUpdates(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()
	require.NoError(t, CreateTable(&Player{}))

	a := newTestPlayer("Ada Striker", "Alpha FC", "FW")
	b := newTestPlayer("Bo Midfield", "Alpha FC", "MF")
	require.NoError(t, BulkSave([]Persistable{a, b}))

	// A second batch updates in place rather than duplicating
	a.Gls = 99
	require.NoError(t, BulkSave([]Persistable{a, b}))

	results, err := FindAll(&Player{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	var reloaded *Player
	for _, r := range results {
		if p, ok := r.(*Player); ok && p.Name == "Ada Striker" {
			reloaded = p
		}
	}
	require.NotNil(t, reloaded)
	assert.InDelta(t, 99.0, reloaded.Gls, 1e-9)
}

func TestSaveAndExists(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()
	require.NoError(t, CreateTable(&Player{}))

	p := newTestPlayer("Cai Defender", "Alpha FC", "DF")

	exists, err := Exists(p)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, Save(p))

	exists, err = Exists(p)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, Delete(p))

	exists, err = Exists(p)
	require.NoError(t, err)
	assert.False(t, exists)
}
