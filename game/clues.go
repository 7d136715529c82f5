/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "github.com/Seednode/cinemaster/catalog"

// ClueKind identifies one revealable attribute of the target.
type ClueKind int

const (
	ClueDirector ClueKind = iota
	ClueYear
	ClueGenres
	ClueActor
	ClueCharacter
	ClueInitial
)

// Clue is one slot of the clue board. Value is empty while Locked.
type Clue struct {
	Kind   ClueKind `json:"-"`
	Label  string   `json:"label"`
	Value  string   `json:"value,omitempty"`
	Locked bool     `json:"locked"`
}

// clueSchedule lists every slot in display order with the number of used
// attempts at which it unlocks.
var clueSchedule = [...]struct {
	kind   ClueKind
	label  string
	unlock int
}{
	{ClueDirector, "Director", 0},
	{ClueYear, "Year", 1},
	{ClueGenres, "Genres", 2},
	{ClueActor, "Lead actor", 3},
	{ClueCharacter, "Role", 4},
	{ClueInitial, "Initial", 5},
}

func (k ClueKind) String() string {
	if int(k) < 0 || int(k) >= len(clueSchedule) {
		return "unknown"
	}

	return clueSchedule[k].label
}

func clueValue(k ClueKind, m catalog.Movie) string {
	switch k {
	case ClueDirector:
		return m.Director
	case ClueYear:
		return m.ReleaseYear
	case ClueGenres:
		return m.Genres
	case ClueActor:
		return m.LeadActor
	case ClueCharacter:
		return m.LeadCharacter
	case ClueInitial:
		return m.Initial()
	}

	return catalog.Unknown
}

// board fills every slot for the given number of used attempts.
func board(m catalog.Movie, used int) []Clue {
	clues := make([]Clue, 0, len(clueSchedule))

	for _, slot := range clueSchedule {
		c := Clue{Kind: slot.kind, Label: slot.label, Locked: used < slot.unlock}
		if !c.Locked {
			c.Value = clueValue(slot.kind, m)
		}
		clues = append(clues, c)
	}

	return clues
}
