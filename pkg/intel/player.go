package intel

import (
	"fmt"
	"math"
	"time"
)

// Compile-time check to ensure Player implements Persistable interface
var _ Persistable = (*Player)(nil)

// RoleGoalkeeper is the position tag that selects the goalkeeper model
// bundles; every other tag is treated as a field player.
const RoleGoalkeeper = "GK"

// Player represents one roster row with database persistence and CSV
// mapping annotations. Numeric stats use NaN for values absent from the
// source table; how NaN is treated is a per-component policy (prediction
// refuses, similarity imputes zero, aggregation skips).
type Player struct {
	// Identity
	Name  string `json:"name" csv:"Player" column:"name" dbtype:"TEXT" primary:"true" index:"true"`
	Squad string `json:"squad" csv:"Squad" column:"squad" dbtype:"TEXT NOT NULL" index:"true"`
	Pos   string `json:"pos" csv:"Pos" column:"pos" dbtype:"TEXT NOT NULL" index:"true"`

	// Playing time
	Age    float64 `json:"age" csv:"Age" column:"age" dbtype:"REAL DEFAULT 0"`
	MP     float64 `json:"mp" csv:"MP" column:"mp" dbtype:"REAL DEFAULT 0"`
	Starts float64 `json:"starts" csv:"Starts" column:"starts" dbtype:"REAL DEFAULT 0"`
	Min    float64 `json:"min" csv:"Min" column:"min" dbtype:"REAL DEFAULT 0"`

	// Goal contribution
	Gls float64 `json:"gls" csv:"Gls" column:"gls" dbtype:"REAL DEFAULT 0"`
	Ast float64 `json:"ast" csv:"Ast" column:"ast" dbtype:"REAL DEFAULT 0"`
	GA  float64 `json:"ga" csv:"G+A" column:"ga" dbtype:"REAL DEFAULT 0"`
	XG  float64 `json:"xg" csv:"xG" column:"xg" dbtype:"REAL DEFAULT 0"`
	XAG float64 `json:"xag" csv:"xAG" column:"xag" dbtype:"REAL DEFAULT 0"`

	// Shooting
	Sh       float64 `json:"sh" csv:"Sh" column:"sh" dbtype:"REAL DEFAULT 0"`
	SoT      float64 `json:"sot" csv:"SoT" column:"sot" dbtype:"REAL DEFAULT 0"`
	SoTPct   float64 `json:"sotPct" csv:"SoT%" column:"sot_pct" dbtype:"REAL DEFAULT 0"`
	ShPer90  float64 `json:"shPer90" csv:"Sh/90" column:"sh_per_90" dbtype:"REAL DEFAULT 0"`
	SoTPer90 float64 `json:"sotPer90" csv:"SoT/90" column:"sot_per_90" dbtype:"REAL DEFAULT 0"`
	GPerSh   float64 `json:"gPerSh" csv:"G/Sh" column:"g_per_sh" dbtype:"REAL DEFAULT 0"`
	GPerSoT  float64 `json:"gPerSot" csv:"G/SoT" column:"g_per_sot" dbtype:"REAL DEFAULT 0"`

	// Passing and creation
	SuccPct float64 `json:"succPct" csv:"Succ%" column:"succ_pct" dbtype:"REAL DEFAULT 0"`
	KP      float64 `json:"kp" csv:"KP" column:"kp" dbtype:"REAL DEFAULT 0"`
	PPA     float64 `json:"ppa" csv:"PPA" column:"ppa" dbtype:"REAL DEFAULT 0"`
	CrsPA   float64 `json:"crspa" csv:"CrsPA" column:"crspa" dbtype:"REAL DEFAULT 0"`
	SCA     float64 `json:"sca" csv:"SCA" column:"sca" dbtype:"REAL DEFAULT 0"`
	SCA90   float64 `json:"sca90" csv:"SCA90" column:"sca90" dbtype:"REAL DEFAULT 0"`
	GCA     float64 `json:"gca" csv:"GCA" column:"gca" dbtype:"REAL DEFAULT 0"`

	// Defending
	Tkl    float64 `json:"tkl" csv:"Tkl" column:"tkl" dbtype:"REAL DEFAULT 0"`
	Int    float64 `json:"int" csv:"Int" column:"int" dbtype:"REAL DEFAULT 0"`
	TklInt float64 `json:"tklInt" csv:"Tkl+Int" column:"tkl_int" dbtype:"REAL DEFAULT 0"`
	Blocks float64 `json:"blocks" csv:"Blocks" column:"blocks" dbtype:"REAL DEFAULT 0"`
	Clr    float64 `json:"clr" csv:"Clr" column:"clr" dbtype:"REAL DEFAULT 0"`
	Won    float64 `json:"won" csv:"Won" column:"won" dbtype:"REAL DEFAULT 0"`
	Rec    float64 `json:"rec" csv:"Rec" column:"rec" dbtype:"REAL DEFAULT 0"`

	// Possession
	Touches     float64 `json:"touches" csv:"Touches" column:"touches" dbtype:"REAL DEFAULT 0"`
	LiveTouches float64 `json:"liveTouches" csv:"Live_stats_possession" column:"live_touches" dbtype:"REAL DEFAULT 0"`
	DefThird    float64 `json:"defThird" csv:"Def 3rd_stats_possession" column:"def_third" dbtype:"REAL DEFAULT 0"`
	MidThird    float64 `json:"midThird" csv:"Mid 3rd_stats_possession" column:"mid_third" dbtype:"REAL DEFAULT 0"`
	AttThird    float64 `json:"attThird" csv:"Att 3rd_stats_possession" column:"att_third" dbtype:"REAL DEFAULT 0"`

	// Progression
	Carries     float64 `json:"carries" csv:"Carries" column:"carries" dbtype:"REAL DEFAULT 0"`
	PrgDist     float64 `json:"prgDist" csv:"PrgDist" column:"prg_dist" dbtype:"REAL DEFAULT 0"`
	PrgC        float64 `json:"prgc" csv:"PrgC" column:"prgc" dbtype:"REAL DEFAULT 0"`
	PrgP        float64 `json:"prgp" csv:"PrgP" column:"prgp" dbtype:"REAL DEFAULT 0"`
	PrgR        float64 `json:"prgr" csv:"PrgR" column:"prgr" dbtype:"REAL DEFAULT 0"`
	ThirdPasses float64 `json:"thirdPasses" csv:"1/3" column:"third_passes" dbtype:"REAL DEFAULT 0"`

	// Conditioning. Precomputed upstream, passed through to predictions unchanged.
	FatigueIndex float64 `json:"fatigueIndex" csv:"FatigueIndex" column:"fatigue_index" dbtype:"REAL DEFAULT 0"`

	// Derived columns, filled by Enrich. Pure functions of the raw columns
	// above; persisted in snapshots but always recomputed on load.
	Potential       float64 `json:"potential,omitempty" column:"potential" dbtype:"REAL DEFAULT 0"`
	Efficiency      float64 `json:"efficiency,omitempty" column:"efficiency" dbtype:"REAL DEFAULT 0"`
	DefensiveImpact float64 `json:"defensiveImpact,omitempty" column:"defensive_impact" dbtype:"REAL DEFAULT 0"`
	AttackScore     float64 `json:"attackScore,omitempty" column:"attack_score" dbtype:"REAL DEFAULT 0"`
	DefenseScore    float64 `json:"defenseScore,omitempty" column:"defense_score" dbtype:"REAL DEFAULT 0"`
	PossessionScore float64 `json:"possessionScore,omitempty" column:"possession_score" dbtype:"REAL DEFAULT 0"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// IsGoalkeeper reports whether the goalkeeper model bundles apply to this row
func (p *Player) IsGoalkeeper() bool {
	return p.Pos == RoleGoalkeeper
}

// FeatureValue resolves a training feature name (as recorded in a model
// bundle, using the source table's column headers) to this row's value.
// The bundle's feature list is the single source of truth for vector
// order; callers must never maintain a parallel ordering of their own.
func (p *Player) FeatureValue(name string) (float64, error) {
	switch name {
	case "Age":
		return p.Age, nil
	case "MP":
		return p.MP, nil
	case "Starts":
		return p.Starts, nil
	case "Min":
		return p.Min, nil
	case "Touches":
		return p.Touches, nil
	case "Carries":
		return p.Carries, nil
	case "PrgDist":
		return p.PrgDist, nil
	case "PrgC":
		return p.PrgC, nil
	case "PrgP":
		return p.PrgP, nil
	case "PrgR":
		return p.PrgR, nil
	case "Succ%":
		return p.SuccPct, nil
	case "Gls":
		return p.Gls, nil
	case "Ast":
		return p.Ast, nil
	case "G+A":
		return p.GA, nil
	case "xG":
		return p.XG, nil
	case "xAG":
		return p.XAG, nil
	case "KP":
		return p.KP, nil
	case "PPA":
		return p.PPA, nil
	case "CrsPA":
		return p.CrsPA, nil
	case "SCA":
		return p.SCA, nil
	case "SCA90":
		return p.SCA90, nil
	case "GCA":
		return p.GCA, nil
	case "Tkl":
		return p.Tkl, nil
	case "Int":
		return p.Int, nil
	case "Tkl+Int":
		return p.TklInt, nil
	case "Blocks":
		return p.Blocks, nil
	case "Clr":
		return p.Clr, nil
	case "Won":
		return p.Won, nil
	case "Rec":
		return p.Rec, nil
	case "FatigueIndex":
		return p.FatigueIndex, nil
	case "Sh":
		return p.Sh, nil
	case "SoT":
		return p.SoT, nil
	case "SoT%":
		return p.SoTPct, nil
	case "Sh/90":
		return p.ShPer90, nil
	case "SoT/90":
		return p.SoTPer90, nil
	case "G/Sh":
		return p.GPerSh, nil
	case "G/SoT":
		return p.GPerSoT, nil
	case "1/3":
		return p.ThirdPasses, nil
	case "Live_stats_possession":
		return p.LiveTouches, nil
	case "Def 3rd_stats_possession":
		return p.DefThird, nil
	case "Mid 3rd_stats_possession":
		return p.MidThird, nil
	case "Att 3rd_stats_possession":
		return p.AttThird, nil
	default:
		return math.NaN(), fmt.Errorf("unknown feature name: %s", name)
	}
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (p *Player) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"name": p.Name,
	}
}

// SetPrimaryKey sets the primary key from a map
func (p *Player) SetPrimaryKey(pk map[string]interface{}) error {
	if name, ok := pk["name"]; ok {
		if nameStr, ok := name.(string); ok {
			p.Name = nameStr
			return nil
		}
		return fmt.Errorf("primary key 'name' must be a string")
	}
	return fmt.Errorf("primary key 'name' not found")
}

// GetTableName returns the table name for players
func (p *Player) GetTableName() string {
	return "players"
}

// BeforeSave is called before saving the player
func (p *Player) BeforeSave() error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	return nil
}

// AfterSave is called after saving the player
func (p *Player) AfterSave() error {
	return nil
}

// BeforeDelete is called before deleting the player
func (p *Player) BeforeDelete() error {
	return nil
}

// AfterDelete is called after deleting the player
func (p *Player) AfterDelete() error {
	return nil
}
