/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Seednode/cinemaster/catalog"
)

type pool []catalog.Movie

func (p pool) Len() int { return len(p) }
func (p pool) At(i int) catalog.Movie { return p[i] }

var avatar = catalog.Movie{
	Title:         "Avatar",
	ReleaseYear:   "2009",
	Genres:        "Action, Adventure",
	Director:      "James Cameron",
	LeadActor:     "Sam Worthington",
	LeadCharacter: "Jake Sully",
}

func newTestSession() *Session {
	return New(rand.New(rand.NewPCG(1, 2)))
}

func startedSession(t *testing.T, d Difficulty) *Session {
	t.Helper()

	s := newTestSession()
	if err := s.Start(d, pool{avatar}); err != nil {
		t.Fatalf("Start(%v): %v", d, err)
	}

	return s
}

func TestStart_AttemptBudget(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       int
	}{
		{Easy, 10},
		{Medium, 5},
		{Hard, 3},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty.String(), func(t *testing.T) {
			s := startedSession(t, tt.difficulty)

			if s.MaxAttempts() != tt.want {
				t.Errorf("MaxAttempts() = %d, want %d", s.MaxAttempts(), tt.want)
			}
			if s.Remaining() != s.MaxAttempts() {
				t.Errorf("Remaining() = %d, want %d", s.Remaining(), s.MaxAttempts())
			}
			if s.State() != Active {
				t.Errorf("State() = %v, want active", s.State())
			}
		})
	}
}

func TestStart_EmptyPool(t *testing.T) {
	s := newTestSession()

	if err := s.Start(Easy, pool{}); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Start(empty) = %v, want ErrEmptyPool", err)
	}
	if s.State() != Idle {
		t.Errorf("State() = %v after failed start, want idle", s.State())
	}
}

func TestStart_UnknownDifficulty(t *testing.T) {
	s := newTestSession()

	if err := s.Start(Difficulty(42), pool{avatar}); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("Start(42) = %v, want ErrUnknownDifficulty", err)
	}
}

func TestStart_WhileActive(t *testing.T) {
	s := startedSession(t, Medium)

	if err := s.Start(Easy, pool{avatar}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Start while active = %v, want ErrInvalidState", err)
	}
	if s.MaxAttempts() != 5 {
		t.Errorf("MaxAttempts() = %d, active round must be untouched", s.MaxAttempts())
	}
}

func TestStart_Uniform(t *testing.T) {
	p := pool{
		{Title: "A"}, {Title: "B"}, {Title: "C"}, {Title: "D"},
	}
	counts := make(map[string]int)

	s := New(rand.New(rand.NewPCG(7, 7)))
	for range 4000 {
		if err := s.Start(Hard, p); err != nil {
			t.Fatalf("Start: %v", err)
		}
		if _, err := s.Abandon(); err != nil {
			t.Fatalf("Abandon: %v", err)
		}
		target, _ := s.Target()
		counts[target.Title]++
	}

	for _, m := range p {
		if n := counts[m.Title]; n < 800 || n > 1200 {
			t.Errorf("title %s drawn %d times out of 4000", m.Title, n)
		}
	}
}

func TestEvaluate_Win(t *testing.T) {
	guesses := []string{"Avatar", "avatar", "  AVATAR\t", "aVaTaR "}

	for _, guess := range guesses {
		t.Run(guess, func(t *testing.T) {
			s := startedSession(t, Easy)

			out, err := s.Evaluate(guess)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", guess, err)
			}

			if out.Kind != OutcomeWon {
				t.Errorf("Kind = %v, want won", out.Kind)
			}
			if out.Remaining != 10 {
				t.Errorf("Remaining = %d, want 10", out.Remaining)
			}
			if out.Target == nil || out.Target.Title != "Avatar" {
				t.Errorf("Target = %v, want Avatar", out.Target)
			}
			if s.State() != Won {
				t.Errorf("State() = %v, want won", s.State())
			}
		})
	}
}

func TestEvaluate_HardLoss(t *testing.T) {
	s := startedSession(t, Hard)

	steps := []struct {
		guess     string
		kind      OutcomeKind
		remaining int
	}{
		{"wrong", OutcomeIncorrect, 2},
		{"Wrong ", OutcomeIncorrect, 1},
		{" ", OutcomeLost, 0},
	}

	for i, step := range steps {
		out, err := s.Evaluate(step.guess)
		if err != nil {
			t.Fatalf("guess %d: %v", i, err)
		}
		if out.Kind != step.kind || out.Remaining != step.remaining {
			t.Fatalf("guess %d = {%v %d}, want {%v %d}", i, out.Kind, out.Remaining, step.kind, step.remaining)
		}
		if step.kind == OutcomeIncorrect && out.Target != nil {
			t.Errorf("guess %d revealed the target mid-round", i)
		}
	}

	if s.State() != Lost {
		t.Errorf("State() = %v, want lost", s.State())
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", s.Remaining())
	}

	if _, err := s.Evaluate("Avatar"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Evaluate after loss = %v, want ErrInvalidState", err)
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d after rejected guess, want 0", s.Remaining())
	}
}

func TestEvaluate_DecrementsByOne(t *testing.T) {
	s := startedSession(t, Easy)

	for want := 9; want > 0; want-- {
		out, err := s.Evaluate("")
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if out.Remaining != want || s.Remaining() != want {
			t.Fatalf("Remaining = %d, want %d", s.Remaining(), want)
		}
		if s.State() != Active {
			t.Fatalf("State() = %v with %d left, want active", s.State(), want)
		}
	}

	out, err := s.Evaluate("")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if out.Kind != OutcomeLost {
		t.Errorf("Kind = %v, want lost", out.Kind)
	}
}

func TestEvaluate_BeforeStart(t *testing.T) {
	s := newTestSession()

	if _, err := s.Evaluate("Avatar"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Evaluate before start = %v, want ErrInvalidState", err)
	}
}

func TestAbandon(t *testing.T) {
	s := startedSession(t, Medium)

	if _, ok := s.Target(); ok {
		t.Error("Target() revealed during an active round")
	}

	out, err := s.Abandon()
	if err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if out.Kind != OutcomeAbandoned || out.Target == nil || out.Target.Title != "Avatar" {
		t.Errorf("Abandon() = %+v, want abandoned with Avatar", out)
	}
	if s.State() != Abandoned {
		t.Errorf("State() = %v, want abandoned", s.State())
	}

	if target, ok := s.Target(); !ok || target.Title != "Avatar" {
		t.Errorf("Target() = %v, %v after abandon", target, ok)
	}

	if _, err := s.Abandon(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Abandon = %v, want ErrInvalidState", err)
	}
}

func TestReset(t *testing.T) {
	s := startedSession(t, Easy)

	if err := s.Reset(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Reset while active = %v, want ErrInvalidState", err)
	}

	if _, err := s.Evaluate("Avatar"); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.State() != Idle || s.MaxAttempts() != 0 || s.UnlockedClues() != nil {
		t.Errorf("session not idle after reset: state=%v max=%d", s.State(), s.MaxAttempts())
	}

	if err := s.Start(Hard, pool{avatar}); err != nil {
		t.Fatalf("Start after reset: %v", err)
	}
}

func TestStart_AfterTerminal(t *testing.T) {
	s := startedSession(t, Easy)

	if _, err := s.Abandon(); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	if err := s.Start(Hard, pool{avatar}); err != nil {
		t.Fatalf("Start after abandon: %v", err)
	}
	if s.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3", s.Remaining())
	}
}
