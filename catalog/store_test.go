/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenStore(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	c := Normalize(
		[]MovieRow{
			{Title: "Heat", ReleaseDate: "1995-12-15", Genres: `[{"name": "Crime"}]`},
			{Title: "Avatar", ReleaseDate: "2009-12-10", Genres: avatarGenres},
		},
		[]CreditRow{
			{Title: "Avatar", Cast: avatarCast, Crew: avatarCrew},
			{Title: "Heat", Cast: `[]`, Crew: `[{'job': 'Director', 'name': 'Michael Mann'}]`},
		},
	)

	if err := s.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !slices.Equal(loaded.Movies(), c.Movies()) {
		t.Errorf("Load() = %+v, want %+v", loaded.Movies(), c.Movies())
	}
	if !slices.Equal(loaded.Titles(), c.Titles()) {
		t.Errorf("Titles() = %v, want %v", loaded.Titles(), c.Titles())
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := Normalize(
		[]MovieRow{{Title: "Heat", ReleaseDate: "1995", Genres: `[]`}},
		[]CreditRow{{Title: "Heat", Cast: `[]`, Crew: `[]`}},
	)
	second := Normalize(
		[]MovieRow{{Title: "Alien", ReleaseDate: "1979", Genres: `[]`}},
		[]CreditRow{{Title: "Alien", Cast: `[]`, Crew: `[]`}},
	)

	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save(first): %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save(second): %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if titles := loaded.Titles(); !slices.Equal(titles, []string{"Alien"}) {
		t.Errorf("Titles() = %v, want [Alien]", titles)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := setupTestStore(t)

	c, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}
