package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// ParseName trims and collapses inner whitespace but keeps casing,
// so display names survive while comparisons stay case-insensitive.
func ParseName(input string) string {
  return strings.Join(strings.Fields(input), " ")
}

func FoldName(input string) string {
  return strings.ToLower(ParseName(input))
}
