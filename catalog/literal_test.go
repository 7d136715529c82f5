/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import "testing"

func TestLiteralToJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json passthrough", `[{"id": 28, "name": "Action"}]`, `[{"id": 28, "name": "Action"}]`},
		{"single quotes", `[{'id': 28, 'name': 'Action'}]`, `[{"id": 28, "name": "Action"}]`},
		{"escaped apostrophe", `[{'name': 'Ocean\'s Eleven'}]`, `[{"name": "Ocean's Eleven"}]`},
		{"double quote inside single", `[{'name': 'The "Dude"'}]`, `[{"name": "The \"Dude\""}]`},
		{"apostrophe inside double", `[{'character': "Jack's Mom"}]`, `[{"character": "Jack's Mom"}]`},
		{"python constants", `[{'a': True, 'b': False, 'c': None}]`, `[{"a": true, "b": false, "c": null}]`},
		{"numbers", `[{'gender': 2, 'order': -1, 'pop': 1.5e3}]`, `[{"gender": 2, "order": -1, "pop": 1.5e3}]`},
		{"hex escape", `['caf\xe9']`, `["caf\u00e9"]`},
		{"empty list", `[]`, `[]`},
		{"trailing commas", `[{'name': 'Action', }, ]`, `[{"name": "Action" } ]`},
		{"comma inside string", `['a,]']`, `["a,]"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := literalToJSON(tt.input)
			if err != nil {
				t.Fatalf("literalToJSON(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("literalToJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLiteralToJSON_Errors(t *testing.T) {
	inputs := []string{
		`[{'name': 'unterminated}]`,
		`[{'name': nan}]`,
		`[{'name': 'bad \q escape'}]`,
		`['trailing backslash\`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if got, err := literalToJSON(input); err == nil {
				t.Errorf("literalToJSON(%q) = %q, want error", input, got)
			}
		})
	}
}
