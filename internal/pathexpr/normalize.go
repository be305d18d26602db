package pathexpr

import "strings"

var normalizer = strings.NewReplacer(".", "_", "[", "_", "]", "_")

// Normalize turns a field path into a flat token by replacing every '.', '['
// and ']' with '_'. Examples:
//   - "customer.name" -> "customer_name"
//   - "items[2].id" -> "items_2__id"
func Normalize(field string) string {
	return normalizer.Replace(field)
}
