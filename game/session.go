/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package game implements a single player's guess-the-movie round: target
// draw, attempt budget, clue schedule and outcome.
//
// A Session is not safe for concurrent use; callers serialize access.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Seednode/cinemaster/catalog"
)

var (
	ErrEmptyPool         = errors.New("no movies to choose from")
	ErrInvalidState      = errors.New("operation not valid in current state")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Pool is the set of records a target is drawn from.
type Pool interface {
	Len() int
	At(i int) catalog.Movie
}

type State int

const (
	Idle State = iota
	Active
	Won
	Lost
	Abandoned
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Abandoned:
		return "abandoned"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the round has ended.
func (s State) Terminal() bool {
	return s == Won || s == Lost || s == Abandoned
}

type OutcomeKind int

const (
	OutcomeIncorrect OutcomeKind = iota
	OutcomeWon
	OutcomeLost
	OutcomeAbandoned
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeAbandoned:
		return "abandoned"
	}

	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of a guess or an abandon. Target is only set once
// the round is over.
type Outcome struct {
	Kind      OutcomeKind
	Remaining int
	Target    *catalog.Movie
}

type Session struct {
	rng *rand.Rand

	state      State
	difficulty Difficulty
	target     catalog.Movie
	max        int
	remaining  int
}

// New returns an idle session drawing targets from rng. A nil rng is
// replaced with a randomly seeded one.
func New(rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Session{rng: rng}
}

// Start begins a round. Any finished round is discarded first.
func (s *Session) Start(d Difficulty, pool Pool) error {
	if s.state == Active {
		return fmt.Errorf("start: %w: round already active", ErrInvalidState)
	}

	attempts := d.Attempts()
	if attempts == 0 {
		return fmt.Errorf("start: %w: %v", ErrUnknownDifficulty, d)
	}

	if pool == nil || pool.Len() == 0 {
		return fmt.Errorf("start: %w", ErrEmptyPool)
	}

	s.target = pool.At(s.rng.IntN(pool.Len()))
	s.difficulty = d
	s.max = attempts
	s.remaining = attempts
	s.state = Active

	return nil
}

// Evaluate compares guess with the target title, ignoring case and
// surrounding whitespace.
func (s *Session) Evaluate(guess string) (Outcome, error) {
	if s.state != Active {
		return Outcome{}, fmt.Errorf("evaluate: %w: %s", ErrInvalidState, s.state)
	}

	if normalizeTitle(guess) == normalizeTitle(s.target.Title) {
		s.state = Won

		return s.reveal(OutcomeWon), nil
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.state = Lost

		return s.reveal(OutcomeLost), nil
	}

	return Outcome{Kind: OutcomeIncorrect, Remaining: s.remaining}, nil
}

// Abandon ends an active round and reveals the target. Outside an active
// round it fails with ErrInvalidState.
func (s *Session) Abandon() (Outcome, error) {
	if s.state != Active {
		return Outcome{}, fmt.Errorf("abandon: %w: %s", ErrInvalidState, s.state)
	}

	s.state = Abandoned

	return s.reveal(OutcomeAbandoned), nil
}

// Reset returns a finished session to Idle. Resetting an active round
// fails; abandon it instead.
func (s *Session) Reset() error {
	if s.state == Active {
		return fmt.Errorf("reset: %w: round still active", ErrInvalidState)
	}

	*s = Session{rng: s.rng}

	return nil
}

func (s *Session) reveal(kind OutcomeKind) Outcome {
	target := s.target

	return Outcome{Kind: kind, Remaining: s.remaining, Target: &target}
}

func (s *Session) State() State { return s.state }

func (s *Session) Difficulty() Difficulty { return s.difficulty }

func (s *Session) MaxAttempts() int { return s.max }

func (s *Session) Remaining() int { return s.remaining }

// Used is the number of incorrect guesses made this round.
func (s *Session) Used() int { return s.max - s.remaining }

// Target returns the round's target once the round is over.
func (s *Session) Target() (catalog.Movie, bool) {
	if !s.state.Terminal() {
		return catalog.Movie{}, false
	}

	return s.target, true
}

// UnlockedClues returns the clues revealed so far, in slot order.
func (s *Session) UnlockedClues() []Clue {
	if s.state == Idle {
		return nil
	}

	var unlocked []Clue
	for _, c := range board(s.target, s.Used()) {
		if !c.Locked {
			unlocked = append(unlocked, c)
		}
	}

	return unlocked
}

// Clues returns every slot of the board, locked ones without a value.
func (s *Session) Clues() []Clue {
	if s.state == Idle {
		return nil
	}

	return board(s.target, s.Used())
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
