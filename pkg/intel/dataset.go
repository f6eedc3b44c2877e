package intel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
)

// Dataset holds the season roster in memory. Lookups are case-insensitive
// and resolve to the first matching row in table order, so duplicate names
// always return the same player.
type Dataset struct {
	players []*Player
	byName  map[string]*Player
	columns map[string]bool
}

// NewDataset builds a dataset from pre-constructed rows. Used by the
// snapshot loader and by tests; CSV and HTML ingestion go through
// buildPlayers instead.
func NewDataset(players []*Player) *Dataset {
	d := &Dataset{
		players: players,
		byName:  make(map[string]*Player),
		columns: make(map[string]bool),
	}
	for _, p := range players {
		key := strings.ToLower(p.Name)
		if _, ok := d.byName[key]; !ok {
			d.byName[key] = p
		}
	}
	for _, header := range csvHeaders() {
		d.columns[header] = true
	}
	return d
}

// Players returns all rows in table order
func (d *Dataset) Players() []*Player {
	return d.players
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.players)
}

// HasColumn reports whether the source table carried the given column
func (d *Dataset) HasColumn(name string) bool {
	return d.columns[name]
}

// FindPlayer resolves a player name case-insensitively.
// Returns ErrPlayerNotFound when no row matches.
func (d *Dataset) FindPlayer(name string) (*Player, error) {
	p, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	return p, nil
}

// TeamRows returns every row whose squad matches the given name,
// case-insensitively, in table order. An empty result is not an error
// here; callers that need a roster decide how to treat unknown teams.
func (d *Dataset) TeamRows(squad string) []*Player {
	want := strings.ToLower(strings.TrimSpace(squad))
	var rows []*Player
	for _, p := range d.players {
		if strings.ToLower(p.Squad) == want {
			rows = append(rows, p)
		}
	}
	return rows
}

// Squads returns the distinct squad names in first-appearance order
func (d *Dataset) Squads() []string {
	seen := make(map[string]bool)
	var squads []string
	for _, p := range d.players {
		key := strings.ToLower(p.Squad)
		if !seen[key] {
			seen[key] = true
			squads = append(squads, p.Squad)
		}
	}
	return squads
}

// LoadCSV reads a roster table from a CSV file. The header row names the
// columns; the identity columns (Player, Squad, Pos) must be present.
// Empty and NA cells become NaN in the numeric fields.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("roster file is empty: %s", path)
	}

	dataset, err := buildPlayers(records[0], records[1:])
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded roster", path, dataset.Len(), "players")
	return dataset, nil
}

// buildPlayers assembles a dataset from a header row and data rows.
// Shared by the CSV loader and the HTML table datasource.
func buildPlayers(header []string, rows [][]string) (*Dataset, error) {
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, required := range []string{"Player", "Squad", "Pos"} {
		if _, ok := colIndex[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	playerType := reflect.TypeOf(Player{})

	players := make([]*Player, 0, len(rows))
	for _, row := range rows {
		p := &Player{}
		pv := reflect.ValueOf(p).Elem()

		for i := 0; i < playerType.NumField(); i++ {
			field := playerType.Field(i)
			csvName := field.Tag.Get("csv")
			if csvName == "" {
				continue
			}

			fv := pv.Field(i)
			idx, ok := colIndex[csvName]
			if !ok || idx >= len(row) {
				if fv.Kind() == reflect.Float64 {
					fv.SetFloat(math.NaN())
				}
				continue
			}

			cell := strings.TrimSpace(row[idx])
			switch fv.Kind() {
			case reflect.String:
				fv.SetString(cell)
			case reflect.Float64:
				fv.SetFloat(parseCell(cell))
			}
		}

		if p.Name == "" {
			continue
		}
		players = append(players, p)
	}

	d := NewDataset(players)
	d.columns = make(map[string]bool, len(colIndex))
	for name := range colIndex {
		d.columns[name] = true
	}
	return d, nil
}

// parseCell converts a table cell to a float, with NaN for anything
// that is not a number
func parseCell(cell string) float64 {
	if cell == "" || cell == "NA" || cell == "N/A" {
		return math.NaN()
	}
	// Thousands separators appear in distance columns
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// csvHeaders lists the column headers the Player struct maps, in field order
func csvHeaders() []string {
	playerType := reflect.TypeOf(Player{})
	var headers []string
	for i := 0; i < playerType.NumField(); i++ {
		if name := playerType.Field(i).Tag.Get("csv"); name != "" {
			headers = append(headers, name)
		}
	}
	return headers
}

// SaveSnapshot persists the roster to the sqlite snapshot so later runs
// can start without the source file. Rows for players no longer in the
// roster are pruned, and the source table's column set is recorded so a
// restored dataset keeps the same required-column gate.
func (d *Dataset) SaveSnapshot() error {
	if err := CreateTable(&Player{}); err != nil {
		return fmt.Errorf("failed to create players table: %w", err)
	}
	if err := CreateTable(&SnapshotMeta{}); err != nil {
		return fmt.Errorf("failed to create snapshot_meta table: %w", err)
	}

	objects := make([]Persistable, 0, len(d.players))
	for _, p := range d.players {
		objects = append(objects, p)
	}

	if err := BulkSave(objects); err != nil {
		return fmt.Errorf("failed to save roster snapshot: %w", err)
	}

	if err := d.pruneSnapshot(); err != nil {
		return fmt.Errorf("failed to prune roster snapshot: %w", err)
	}

	columns := make([]string, 0, len(d.columns))
	for name := range d.columns {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	meta := &SnapshotMeta{Key: snapshotColumnsKey, Value: strings.Join(columns, columnSeparator)}
	if err := Save(meta); err != nil {
		return fmt.Errorf("failed to save snapshot metadata: %w", err)
	}

	logger.Info("Saved roster snapshot", len(objects), "players")
	return nil
}

// pruneSnapshot deletes snapshot rows whose players have left the
// roster, so a shrunk source file does not leave stale entries behind
func (d *Dataset) pruneSnapshot() error {
	if len(d.players) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(d.byName))
	args := make([]interface{}, 0, len(d.byName))
	for _, p := range d.players {
		placeholders = append(placeholders, "?")
		args = append(args, p.Name)
	}

	where := fmt.Sprintf("name NOT IN (%s)", strings.Join(placeholders, ", "))
	stale, err := FindWhere(&Player{}, where, args...)
	if err != nil {
		return err
	}

	for _, r := range stale {
		p, ok := r.(*Player)
		if !ok {
			continue
		}
		if err := Delete(p); err != nil {
			return err
		}
		logger.Debug("Pruned departed player from snapshot", p.Name)
	}
	return nil
}

// LoadSnapshot restores the roster from the sqlite snapshot
func LoadSnapshot() (*Dataset, error) {
	if err := CreateTable(&Player{}); err != nil {
		return nil, fmt.Errorf("failed to create players table: %w", err)
	}
	if err := CreateTable(&SnapshotMeta{}); err != nil {
		return nil, fmt.Errorf("failed to create snapshot_meta table: %w", err)
	}

	results, err := FindAll(&Player{})
	if err != nil {
		return nil, fmt.Errorf("failed to load roster snapshot: %w", err)
	}

	players := make([]*Player, 0, len(results))
	for _, r := range results {
		if p, ok := r.(*Player); ok {
			players = append(players, p)
		}
	}

	if len(players) == 0 {
		return nil, fmt.Errorf("roster snapshot is empty")
	}

	d := NewDataset(players)

	// Restore the source column set. Snapshots written before the
	// metadata table existed fall back to the full struct mapping.
	meta := &SnapshotMeta{}
	if err := FindByPrimaryKey(meta, map[string]interface{}{"key": snapshotColumnsKey}); err == nil {
		d.columns = make(map[string]bool)
		for _, name := range strings.Split(meta.Value, columnSeparator) {
			if name != "" {
				d.columns[name] = true
			}
		}
	}

	logger.Info("Loaded roster snapshot", len(players), "players")
	return d, nil
}
