// SPDX-License-Identifier: MPL-2.0

package funcs

import "testing"

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "single word", input: "build", want: "build"},
		{name: "pascal case", input: "MyFunction", want: "my-function"},
		{name: "camel case", input: "withSource", want: "with-source"},
		{name: "acronym then word", input: "HTTPServer", want: "http-server"},
		{name: "word then acronym", input: "ServeHTTP", want: "serve-http"},
		{name: "digit boundary", input: "base64Encode", want: "base64-encode"},
		{name: "already kebab", input: "already-kebab", want: "already-kebab"},
		{name: "all caps", input: "API", want: "api"},
		{name: "interior acronym", input: "ParseJSONBody", want: "parse-json-body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToKebabCase(tt.input); got != tt.want {
				t.Errorf("ToKebabCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToKebabCaseIdempotent(t *testing.T) {
	inputs := []string{"MyFunction", "HTTPServer", "base64Encode", "plain"}
	for _, in := range inputs {
		once := ToKebabCase(in)
		if twice := ToKebabCase(once); twice != once {
			t.Errorf("ToKebabCase not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
