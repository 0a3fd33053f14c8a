// Package placeholder fills {{name}} and {{{name}}} tokens in raw template
// text from a flat map of values.
//
// Substitution is a single pass. Values are inserted verbatim, without HTML
// escaping, and are never scanned again, so a value that itself looks like a
// token stays as it is. Tokens whose key is absent, nil, or not a scalar are
// left in the output untouched.
package placeholder

import (
	"reflect"
	"regexp"

	"github.com/spf13/cast"
)

var tokenPattern = regexp.MustCompile(`\{\{\{?([\w-]+)\}\}\}?`)

// Substitute returns template with every token that has a usable value in
// data replaced by that value's string form.
func Substitute(template string, data map[string]any) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		key := tokenPattern.FindStringSubmatch(token)[1]
		value, ok := Lookup(data, key)
		if !ok {
			return token
		}
		return value
	})
}

// Lookup returns the string form of data[key] and whether it can be
// substituted.
func Lookup(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok || isNil(v) {
		return "", false
	}

	switch v.(type) {
	case []any, map[string]any:
		return "", false
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// Tokens lists the distinct keys referenced by template, in order of first
// appearance.
func Tokens(template string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range tokenPattern.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

// Missing lists the keys referenced by template that data cannot fill.
func Missing(template string, data map[string]any) []string {
	var missing []string
	for _, key := range Tokens(template) {
		if _, ok := Lookup(data, key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
