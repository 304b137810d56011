package orderrepo

import "strings"

// ColumnName converts a client-facing camelCase field name to the store's
// snake_case column convention by inserting an underscore before each
// uppercase letter and lowercasing it, e.g. "firstName" -> "first_name".
//
// The function is total: unrecognized or malformed names pass through the
// same transformation without a column-existence check. An unknown column
// surfaces as a store-level query failure, not a mapping error.
func ColumnName(externalName string) string {
	var b strings.Builder
	b.Grow(len(externalName) + 4)

	for _, r := range externalName {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
