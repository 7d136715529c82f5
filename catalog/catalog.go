/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"slices"
	"strings"
)

// MovieRow is one row of the movie attributes table, fields still raw.
type MovieRow struct {
	Title       string `parquet:"title,optional"`
	ReleaseDate string `parquet:"release_date,optional"`
	Genres      string `parquet:"genres,optional"`
}

// CreditRow is one row of the credits table, fields still raw.
type CreditRow struct {
	Title string `parquet:"title,optional"`
	Cast  string `parquet:"cast,optional"`
	Crew  string `parquet:"crew,optional"`
}

// Catalog is the normalized, read-only record set. It is safe for
// concurrent use once built.
type Catalog struct {
	movies     []Movie
	index      map[string]int
	titles     []string
	duplicates []string
	issues     []*ParseError
}

type credit struct {
	actor     string
	character string
	director  string
}

// Normalize cleans both tables and inner-joins them on exact title. Fields
// that fail to parse are set to Unknown and reported through Issues.
// Titles repeated in either table produce one record per pairing.
func Normalize(movies []MovieRow, credits []CreditRow) *Catalog {
	var issues []*ParseError

	note := func(title string, field Field, err error) {
		if err != nil {
			issues = append(issues, &ParseError{Title: title, Field: field, Err: err})
		}
	}

	byTitle := make(map[string][]credit, len(credits))
	for _, row := range credits {
		if strings.TrimSpace(row.Title) == "" {
			continue
		}

		actor, character, err := leadCast(row.Cast)
		note(row.Title, FieldCast, err)

		dir, err := director(row.Crew)
		note(row.Title, FieldCrew, err)

		byTitle[row.Title] = append(byTitle[row.Title], credit{
			actor:     actor,
			character: character,
			director:  dir,
		})
	}

	joined := make([]Movie, 0, min(len(movies), len(credits)))
	for _, row := range movies {
		matches, ok := byTitle[row.Title]
		if !ok {
			continue
		}

		year, err := releaseYear(row.ReleaseDate)
		note(row.Title, FieldReleaseDate, err)

		genres, err := genreNames(row.Genres)
		note(row.Title, FieldGenres, err)

		for _, c := range matches {
			joined = append(joined, Movie{
				Title:         row.Title,
				ReleaseYear:   year,
				Genres:        genres,
				Director:      c.director,
				LeadActor:     c.actor,
				LeadCharacter: c.character,
			})
		}
	}

	c := build(joined)
	c.issues = issues

	return c
}

func build(movies []Movie) *Catalog {
	slices.SortStableFunc(movies, func(a, b Movie) int {
		return strings.Compare(a.Title, b.Title)
	})

	c := &Catalog{
		movies: movies,
		index:  make(map[string]int, len(movies)),
	}

	for i, m := range movies {
		if _, seen := c.index[m.Title]; seen {
			if len(c.duplicates) == 0 || c.duplicates[len(c.duplicates)-1] != m.Title {
				c.duplicates = append(c.duplicates, m.Title)
			}

			continue
		}

		c.index[m.Title] = i
		c.titles = append(c.titles, m.Title)
	}

	return c
}

// Len reports the number of joined records.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// At returns the i-th record in title order.
func (c *Catalog) At(i int) Movie {
	return c.movies[i]
}

// Movies returns a copy of every record in title order.
func (c *Catalog) Movies() []Movie {
	return slices.Clone(c.movies)
}

// Lookup returns the first record with exactly this title.
func (c *Catalog) Lookup(title string) (Movie, bool) {
	i, ok := c.index[title]
	if !ok {
		return Movie{}, false
	}

	return c.movies[i], true
}

// Titles returns the distinct titles in sorted order.
func (c *Catalog) Titles() []string {
	return slices.Clone(c.titles)
}

// Duplicates lists titles that joined to more than one record.
func (c *Catalog) Duplicates() []string {
	return slices.Clone(c.duplicates)
}

// Issues lists every field that was replaced with Unknown.
func (c *Catalog) Issues() []*ParseError {
	return slices.Clone(c.issues)
}
