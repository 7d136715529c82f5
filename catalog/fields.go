/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Field names a source column that can fail to parse.
type Field string

const (
	FieldReleaseDate Field = "release_date"
	FieldGenres      Field = "genres"
	FieldCast        Field = "cast"
	FieldCrew        Field = "crew"
)

var (
	ErrEmptyField  = errors.New("field is empty")
	ErrMalformed   = errors.New("malformed list literal")
	ErrNotList     = errors.New("value is not a list")
	ErrEmptyList   = errors.New("list has no entries")
	ErrMissingKey  = errors.New("entry is missing a key")
	ErrInvalidDate = errors.New("release date has no leading year")
)

// ParseError records a single field that was replaced with Unknown during
// normalization. It is collected for reporting, never returned.
type ParseError struct {
	Title string
	Field Field
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q: %s: %v", e.Title, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseList(raw string) (gjson.Result, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return gjson.Result{}, ErrEmptyField
	}

	js, err := literalToJSON(s)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !gjson.Valid(js) {
		return gjson.Result{}, ErrMalformed
	}

	list := gjson.Parse(js)
	if !list.IsArray() {
		return gjson.Result{}, ErrNotList
	}

	return list, nil
}

func stringKey(entry gjson.Result, key string) (string, error) {
	v := entry.Get(key)
	if !entry.IsObject() || !v.Exists() || v.Type != gjson.String {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}

	return v.String(), nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}

	return s
}

// releaseYear keeps the first four characters of a date such as 2009-12-10.
func releaseYear(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown, ErrEmptyField
	}

	if len(s) < 4 {
		return Unknown, ErrInvalidDate
	}

	year := s[:4]
	for i := 0; i < len(year); i++ {
		if !isDigit(year[i]) {
			return Unknown, ErrInvalidDate
		}
	}

	return year, nil
}

// genreNames joins the name of every entry of a [{"name": ...}] list. An
// empty list yields Unknown without error.
func genreNames(raw string) (string, error) {
	list, err := parseList(raw)
	if err != nil {
		return Unknown, err
	}

	entries := list.Array()
	if len(entries) == 0 {
		return Unknown, nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, err := stringKey(entry, "name")
		if err != nil {
			return Unknown, err
		}
		names = append(names, name)
	}

	return orUnknown(strings.Join(names, ", ")), nil
}

// leadCast returns the name and character of the first cast entry.
func leadCast(raw string) (actor, character string, err error) {
	list, err := parseList(raw)
	if err != nil {
		return Unknown, Unknown, err
	}

	first := list.Get("0")
	if !first.Exists() {
		return Unknown, Unknown, ErrEmptyList
	}

	actor, err = stringKey(first, "name")
	if err != nil {
		return Unknown, Unknown, err
	}

	character, err = stringKey(first, "character")
	if err != nil {
		return Unknown, Unknown, err
	}

	return orUnknown(actor), orUnknown(character), nil
}

// director returns the name of the first crew entry whose job is Director.
// A crew without one yields Unknown without error.
func director(raw string) (string, error) {
	list, err := parseList(raw)
	if err != nil {
		return Unknown, err
	}

	entry := list.Get(`#(job=="Director")`)
	if !entry.Exists() {
		return Unknown, nil
	}

	name, err := stringKey(entry, "name")
	if err != nil {
		return Unknown, err
	}

	return orUnknown(name), nil
}
