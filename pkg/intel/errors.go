package intel

import (
	"errors"
	"fmt"
	"strings"
)

// Recoverable lookup failures. These are turned into descriptive messages
// at the tool boundary rather than surfacing as protocol errors.
var (
	// ErrPlayerNotFound means no roster row matched the requested player name
	ErrPlayerNotFound = errors.New("player not found")

	// ErrTeamNotFound means no roster rows matched one or both squad names
	ErrTeamNotFound = errors.New("team not found")
)

// FeatureMismatchError is a fatal wiring failure: a model bundle's expected
// input width does not match the vector assembled for it. This must abort
// startup rather than silently truncate or pad.
type FeatureMismatchError struct {
	Bundle   string
	Expected int
	Got      int
}

func (e *FeatureMismatchError) Error() string {
	return fmt.Sprintf("bundle %s expects %d features, got %d", e.Bundle, e.Expected, e.Got)
}

// MissingColumnError is a fatal dataset failure: the loaded table does not
// carry one or more raw columns that derivation or prediction requires.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// MissingValueError reports a row whose feature vector could not be
// assembled because a required value is absent. Prediction refuses to
// impute; similarity deliberately does the opposite.
type MissingValueError struct {
	Player  string
	Feature string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("player %s has no value for feature %s", e.Player, e.Feature)
}
