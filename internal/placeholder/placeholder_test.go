package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	var nilPtr *string

	tests := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{
			name:     "double braces",
			template: "<p>{{customerName}}</p>",
			data:     map[string]any{"customerName": "Jane"},
			want:     "<p>Jane</p>",
		},
		{
			name:     "triple braces are not escaped",
			template: "<div>{{{itemsTableBody}}}</div>",
			data:     map[string]any{"itemsTableBody": "<tr><td>1</td></tr>"},
			want:     "<div><tr><td>1</td></tr></div>",
		},
		{
			name:     "hyphenated key",
			template: "{{quote-id}}",
			data:     map[string]any{"quote-id": "Q1"},
			want:     "Q1",
		},
		{
			name:     "numbers use shortest form",
			template: "{{a}} {{b}} {{c}}",
			data:     map[string]any{"a": 50.0, "b": 25.5, "c": 3},
			want:     "50 25.5 3",
		},
		{
			name:     "missing key left intact",
			template: "Total: {{grandTotal}}",
			data:     map[string]any{},
			want:     "Total: {{grandTotal}}",
		},
		{
			name:     "nil value left intact",
			template: "{{a}}|{{{b}}}",
			data:     map[string]any{"a": nil, "b": nilPtr},
			want:     "{{a}}|{{{b}}}",
		},
		{
			name:     "structured value left intact",
			template: "{{items}}",
			data:     map[string]any{"items": []any{1.0, 2.0}},
			want:     "{{items}}",
		},
		{
			name:     "empty string replaces",
			template: "[{{note}}]",
			data:     map[string]any{"note": ""},
			want:     "[]",
		},
		{
			name:     "no recursive expansion",
			template: "{{a}}",
			data:     map[string]any{"a": "{{b}}", "b": "nope"},
			want:     "{{b}}",
		},
		{
			name:     "self reference does not loop",
			template: "{{a}}",
			data:     map[string]any{"a": "{{a}}"},
			want:     "{{a}}",
		},
		{
			name:     "not a token",
			template: "{{ spaced }} {single} {{}}",
			data:     map[string]any{"spaced": "x", "single": "y"},
			want:     "{{ spaced }} {single} {{}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.template, tt.data))
		})
	}
}

func TestSubstitute_MissingKeysAreStable(t *testing.T) {
	template := "<h1>{{quoteId}}</h1><p>{{{customerInfoHtml}}}</p><span>{{unknown-key}}</span>"
	data := map[string]any{"quoteId": "RB-1"}

	once := Substitute(template, data)
	twice := Substitute(once, data)

	assert.Equal(t, once, twice)
	assert.Contains(t, once, "{{{customerInfoHtml}}}")
	assert.Contains(t, once, "{{unknown-key}}")
}

func TestTokensAndMissing(t *testing.T) {
	template := "{{a}} {{{b}}} {{a}} {{c-d}}"

	assert.Equal(t, []string{"a", "b", "c-d"}, Tokens(template))
	assert.Equal(t, []string{"b", "c-d"}, Missing(template, map[string]any{"a": "x", "b": nil}))
	assert.Empty(t, Missing("plain text", nil))
}
