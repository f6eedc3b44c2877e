package intel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `Player,Squad,Pos,Age,Gls,Ast,xG,Min
Jude Bellingham,Real Madrid,MF,20,19,6,12.9,2500
Vinicius Junior,Real Madrid,FW,23,15,6,14.2,2200
Robert Lewandowski,Barcelona,FW,35,19,8,18.5,2700
Jude Bellingham,Sunderland,MF,17,1,0,0.8,400
Marc ter Stegen,Barcelona,GK,31,0,0,,2600
`

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)
	assert.Equal(t, 5, d.Len())
	assert.True(t, d.HasColumn("xG"))
	assert.False(t, d.HasColumn("Tkl"))
}

func TestFindPlayerIsCaseInsensitive(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	for _, query := range []string{"Jude Bellingham", "jude bellingham", "JUDE BELLINGHAM"} {
		p, err := d.FindPlayer(query)
		require.NoError(t, err, query)
		assert.Equal(t, "Jude Bellingham", p.Name)
	}
}

func TestFindPlayerReturnsFirstMatch(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	// Two rows share the name; table order decides
	p, err := d.FindPlayer("Jude Bellingham")
	require.NoError(t, err)
	assert.Equal(t, "Real Madrid", p.Squad)
}

func TestFindPlayerUnknown(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	_, err = d.FindPlayer("Nobody Atall")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestTeamRowsIsCaseInsensitive(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	rows := d.TeamRows("barcelona")
	assert.Len(t, rows, 2)

	assert.Empty(t, d.TeamRows("Atlantis United"))
}

func TestEmptyCellsBecomeNaN(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	p, err := d.FindPlayer("Marc ter Stegen")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(p.XG))
	// Columns absent from the table entirely are NaN too
	assert.True(t, math.IsNaN(p.Tkl))
}

func TestLoadCSVMissingIdentityColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Team\nSomeone,Somewhere\n"), 0644))

	_, err := LoadCSV(path)
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"Player", "Squad", "Pos"}, missing.Columns)
}

func TestSquads(t *testing.T) {
	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Real Madrid", "Barcelona", "Sunderland"}, d.Squads())
}

func TestSnapshotRoundTrip(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)
	require.NoError(t, d.SaveSnapshot())

	restored, err := LoadSnapshot()
	require.NoError(t, err)
	// Snapshot is keyed on player name, so the duplicate row collapses
	assert.Equal(t, 4, restored.Len())

	p, err := restored.FindPlayer("vinicius junior")
	require.NoError(t, err)
	assert.Equal(t, "Real Madrid", p.Squad)
	assert.InDelta(t, 14.2, p.XG, 1e-9)

	// NaN survives the round trip as NaN, not zero
	gk, err := restored.FindPlayer("Marc ter Stegen")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(gk.XG))
}

func TestSnapshotPrunesDepartedPlayers(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)
	require.NoError(t, d.SaveSnapshot())

	// Lewandowski leaves; re-saving the smaller roster drops his row
	var remaining []*Player
	for _, p := range d.Players() {
		if p.Name != "Robert Lewandowski" {
			remaining = append(remaining, p)
		}
	}
	require.NoError(t, NewDataset(remaining).SaveSnapshot())

	restored, err := LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 3, restored.Len())

	_, err = restored.FindPlayer("Robert Lewandowski")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestSnapshotKeepsColumnGate(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	d, err := LoadCSV(writeTestCSV(t))
	require.NoError(t, err)
	require.NoError(t, d.SaveSnapshot())

	restored, err := LoadSnapshot()
	require.NoError(t, err)
	assert.True(t, restored.HasColumn("xG"))
	assert.False(t, restored.HasColumn("Tkl"))

	// The required-column check fires on the restored roster just as it
	// does on the source file
	err = Enrich(restored)
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "Tkl")
}
