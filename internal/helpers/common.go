package helpers

import (
	"strconv"
	"strings"
)

// ParseList splits a comma-separated query value into trimmed tokens.
// Empty tokens are dropped and the result is never nil.
func ParseList(s string) []string {
	values := make([]string, 0)
	for _, token := range strings.Split(s, ",") {
		if token = strings.TrimSpace(token); token != "" {
			values = append(values, token)
		}
	}
	return values
}

// ParseID parses a path identifier as a non-negative integer
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// ExpandLang substitutes the {lang} placeholder of a dataset pattern.
// An empty lang leaves the pattern unchanged.
func ExpandLang(pattern, lang string) string {
	if lang == "" {
		return pattern
	}
	return strings.ReplaceAll(pattern, "{lang}", lang)
}
