/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps a normalized catalog in a SQLite file so later runs can skip
// cleaning the source tables.
type Store struct {
	conn *sql.DB
}

func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to ping snapshot: %w", err)
	}

	s := &Store{conn: conn}

	if err := s.createTables(); err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS movies (
		seq INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		release_year TEXT NOT NULL,
		genres TEXT NOT NULL,
		director TEXT NOT NULL,
		lead_actor TEXT NOT NULL,
		lead_character TEXT NOT NULL
	);
	`

	_, err := s.conn.Exec(query)
	return err
}

// Save replaces the stored records with those of c.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (seq, title, release_year, genres, director, lead_actor, lead_character)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range c.movies {
		_, err := stmt.ExecContext(ctx, i, m.Title, m.ReleaseYear, m.Genres, m.Director, m.LeadActor, m.LeadCharacter)
		if err != nil {
			return fmt.Errorf("failed to insert %q: %w", m.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// Load rebuilds a catalog from the stored records. An empty store yields an
// empty catalog.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT title, release_year, genres, director, lead_actor, lead_character
		FROM movies ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.Title, &m.ReleaseYear, &m.Genres, &m.Director, &m.LeadActor, &m.LeadCharacter); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return build(movies), nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
