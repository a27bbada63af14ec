package model

import (
	"strings"
	"unicode"
)

// The store uses snake_case columns while the API surface uses camelCase
// field names. The translation lives here, in one place, so it can be
// checked independently of any query logic. The struct db/json tags in this
// package are expected to be exact images of each other under these two
// functions.

// SnakeToCamel converts a snake_case column name to its camelCase field
// name: next_billing_date -> nextBillingDate.
func SnakeToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CamelToSnake converts a camelCase field name to its snake_case column
// name: nextBillingDate -> next_billing_date.
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
