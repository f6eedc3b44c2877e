package intel

import "fmt"

// snapshotColumnsKey names the metadata row recording the source table's
// column set
const snapshotColumnsKey = "columns"

// columnSeparator joins column names in the metadata row. Column names
// from scraped tables can contain spaces and punctuation, so a newline
// is the only safe separator.
const columnSeparator = "\n"

// SnapshotMeta is one key/value record describing the roster snapshot,
// currently just the column set of the table the snapshot was built from
type SnapshotMeta struct {
	Key   string `column:"key" dbtype:"TEXT NOT NULL" primary:"true"`
	Value string `column:"value" dbtype:"TEXT NOT NULL DEFAULT ''"`
}

// GetPrimaryKey returns the primary key as a map
func (m *SnapshotMeta) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"key": m.Key,
	}
}

// SetPrimaryKey sets the primary key from a map
func (m *SnapshotMeta) SetPrimaryKey(pk map[string]interface{}) error {
	if key, ok := pk["key"]; ok {
		if keyStr, ok := key.(string); ok {
			m.Key = keyStr
			return nil
		}
		return fmt.Errorf("primary key 'key' must be a string")
	}
	return fmt.Errorf("primary key 'key' not found")
}

// GetTableName returns the table name for snapshot metadata
func (m *SnapshotMeta) GetTableName() string {
	return "snapshot_meta"
}

func (m *SnapshotMeta) BeforeSave() error { return nil }

func (m *SnapshotMeta) AfterSave() error { return nil }

func (m *SnapshotMeta) BeforeDelete() error { return nil }

func (m *SnapshotMeta) AfterDelete() error { return nil }
