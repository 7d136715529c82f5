/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"fmt"
	"strings"
)

// Difficulty fixes the attempt budget of a round.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// Attempts returns the number of guesses allowed, or 0 for an unknown value.
func (d Difficulty) Attempts() int {
	switch d {
	case Easy:
		return 10
	case Medium:
		return 5
	case Hard:
		return 3
	}

	return 0
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}

	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty accepts the English labels and their French counterparts
// (facile, moyen, difficile), ignoring case and surrounding space.
func ParseDifficulty(label string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "easy", "facile":
		return Easy, nil
	case "medium", "moyen":
		return Medium, nil
	case "hard", "difficile":
		return Hard, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, label)
}
