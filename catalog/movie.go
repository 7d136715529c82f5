/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package catalog loads and cleans the movie dataset the guessing game
// draws its targets from.
package catalog

import "unicode/utf8"

// Unknown stands in for any field that is missing or could not be parsed.
const Unknown = "unknown"

// Movie is one joined, cleaned row of the dataset.
type Movie struct {
	Title         string `json:"title"`
	ReleaseYear   string `json:"release_year"`
	Genres        string `json:"genres"`
	Director      string `json:"director"`
	LeadActor     string `json:"lead_actor"`
	LeadCharacter string `json:"lead_character"`
}

// Initial returns the first character of the title.
func (m Movie) Initial() string {
	r, size := utf8.DecodeRuneInString(m.Title)
	if size == 0 || r == utf8.RuneError {
		return Unknown
	}

	return string(r)
}
