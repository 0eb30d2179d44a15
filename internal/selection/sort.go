package selection

import (
	"fmt"
	"strings"
)

// Direction is the sort order of the active column
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection parses "asc"/"desc". Empty input yields Desc.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Desc:
		return Desc, nil
	case Asc:
		return Asc, nil
	}
	return Desc, fmt.Errorf("unknown sort direction %q (valid: asc, desc)", s)
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortSpec orders the view by one column
type SortSpec struct {
	Column    Column    `json:"column"`
	Direction Direction `json:"direction"`
}

// SortState is the header-click state of the overlay:
// one active column pointer (or none) and its direction.
type SortState struct {
	Active    Column    `json:"active"`
	Direction Direction `json:"direction"`
}

// ToggleSort applies a header click on column.
// A column that is not active becomes active with Desc; the active column flips.
// Invalid columns leave the state unchanged.
func ToggleSort(state SortState, column Column) SortState {
	if !column.Valid() {
		return state
	}
	if state.Active == column {
		return SortState{Active: column, Direction: state.Direction.Flip()}
	}
	return SortState{Active: column, Direction: Desc}
}

// Spec converts the state into the engine's optional sort spec
func (s SortState) Spec() *SortSpec {
	if !s.Active.Valid() {
		return nil
	}
	dir := s.Direction
	if dir != Asc {
		dir = Desc
	}
	return &SortSpec{Column: s.Active, Direction: dir}
}
