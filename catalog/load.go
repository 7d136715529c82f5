/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

var ErrMissingColumn = errors.New("missing column")

// LoadCSV reads and normalizes a movies table and a credits table, each a
// comma-separated file with a header row. A path ending in .parquet is read
// as a parquet file instead, matching columns by name.
func LoadCSV(moviesPath, creditsPath string) (*Catalog, error) {
	movies, err := readFile(moviesPath, ReadMovies)
	if err != nil {
		return nil, err
	}

	credits, err := readFile(creditsPath, ReadCredits)
	if err != nil {
		return nil, err
	}

	return Normalize(movies, credits), nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return readParquet[T](path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// ReadMovies reads rows with title, release_date and genres columns.
func ReadMovies(r io.Reader) ([]MovieRow, error) {
	return readTable(r, []string{"title", "release_date", "genres"}, func(v []string) MovieRow {
		return MovieRow{Title: v[0], ReleaseDate: v[1], Genres: v[2]}
	})
}

// ReadCredits reads rows with title, cast and crew columns.
func ReadCredits(r io.Reader) ([]CreditRow, error) {
	return readTable(r, []string{"title", "cast", "crew"}, func(v []string) CreditRow {
		return CreditRow{Title: v[0], Cast: v[1], Crew: v[2]}
	})
}

// readTable locates the wanted columns by header name and hands their values,
// in the order asked for, to row. Short records yield empty values.
func readTable[T any](r io.Reader, columns []string, row func([]string) T) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
		}

		return nil, err
	}

	pos := make([]int, len(columns))
	for i, name := range columns {
		pos[i] = -1
		for j, h := range header {
			h = strings.TrimPrefix(h, "\ufeff")
			if strings.EqualFold(strings.TrimSpace(h), name) {
				pos[i] = j

				break
			}
		}

		if pos[i] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var rows []T

	values := make([]string, len(columns))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		for i, p := range pos {
			values[i] = ""
			if p < len(record) {
				values[i] = record[p]
			}
		}

		rows = append(rows, row(values))
	}

	return rows, nil
}

// readParquet reads every row of a parquet file into T, whose parquet tags
// name the wanted columns. Other columns are ignored and null values read
// as empty strings.
func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	rows, err := parquet.Read[T](f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}
