/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var errUnterminated = errors.New("unterminated string")

// literalToJSON rewrites a list/dict literal as written by Python's repr
// (single-quoted strings, True/False/None) into JSON text. Input that is
// already JSON passes through unchanged. A trailing comma before a closing
// bracket or brace is dropped. The result is not validated.
func literalToJSON(s string) (string, error) {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == '\'' || c == '"':
			n, err := quoted(&out, s[i:])
			if err != nil {
				return "", fmt.Errorf("offset %d: %w", i, err)
			}
			i += n
		case c == ',' && trailingComma(s[i+1:]):
			i++
		case c == '-' || isDigit(c):
			j := i + 1
			for j < len(s) && (isDigit(s[j]) || strings.IndexByte(".eE+-", s[j]) >= 0) {
				j++
			}
			out.WriteString(s[i:j])
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}

			switch word := s[i:j]; word {
			case "True", "true":
				out.WriteString("true")
			case "False", "false":
				out.WriteString("false")
			case "None", "null":
				out.WriteString("null")
			default:
				return "", fmt.Errorf("offset %d: unexpected identifier %q", i, word)
			}
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}

	return out.String(), nil
}

// quoted copies one quoted string starting at s[0] into out as a JSON
// string and reports how many bytes of s it consumed.
func quoted(out *strings.Builder, s string) (int, error) {
	quote := s[0]

	out.WriteByte('"')

	for i := 1; i < len(s); i++ {
		c := s[i]

		switch {
		case c == quote:
			out.WriteByte('"')

			return i + 1, nil
		case c == '\\':
			if i+1 >= len(s) {
				return 0, errUnterminated
			}
			i++

			switch e := s[i]; e {
			case '\'':
				out.WriteByte('\'')
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				out.WriteByte('\\')
				out.WriteByte(e)
			case 'u':
				out.WriteString(`\u`)
			case 'x':
				if i+2 >= len(s) {
					return 0, errUnterminated
				}
				out.WriteString(`\u00`)
				out.WriteString(s[i+1 : i+3])
				i += 2
			default:
				return 0, fmt.Errorf("unsupported escape \\%c", e)
			}
		case c == '"':
			out.WriteString(`\"`)
		case c < 0x20:
			fmt.Fprintf(out, `\u%04x`, c)
		default:
			out.WriteByte(c)
		}
	}

	return 0, errUnterminated
}

// trailingComma reports whether rest, the text after a comma, closes the
// enclosing list or dict.
func trailingComma(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")

	return rest != "" && (rest[0] == ']' || rest[0] == '}')
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
