// Package naming provides shared string tokenization and case conversion
// utilities used by the synthesis engine and the code emitters.
package naming

import (
	"strings"
	"unicode"
)

// Tokens splits a raw name into lower-level tokens. Any run of
// non-alphanumeric characters acts as a single separator, and transitions
// from lower to upper case start a new token.
// Example: "user--profile URL" -> ["user", "profile", "URL"]
// Example: "userProfile" -> ["user", "Profile"]
func Tokens(s string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	var prev rune
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			prev = r
			continue
		}
		// camelCase boundary: lower or digit followed by upper
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			flush()
		}
		current.WriteRune(r)
		prev = r
	}
	flush()

	return tokens
}

// ToPascalCase converts a string to PascalCase.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	var result strings.Builder
	for _, tok := range Tokens(s) {
		result.WriteString(ToTitleCase(tok))
	}
	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the leading letter run lowercased.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToSnakeCase converts a string to snake_case.
// Example: "UserProfile" -> "user_profile"
func ToSnakeCase(s string) string {
	tokens := Tokens(s)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return strings.Join(tokens, "_")
}

// ToScreamingSnakeCase converts a string to SCREAMING_SNAKE_CASE.
// Example: "not found" -> "NOT_FOUND"
func ToScreamingSnakeCase(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}

// ToTitleCase converts the first letter to uppercase.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// IsIdentifier reports whether s is a valid target-language identifier:
// a letter or underscore followed by letters, digits, or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Singularize strips a trailing plural suffix from a resource token.
// It handles the common English forms that appear in REST path segments:
// "users" -> "user", "categories" -> "category", "statuses" -> "status".
// Tokens that are not recognizably plural are returned unchanged.
func Singularize(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(lower, "ses"), strings.HasSuffix(lower, "zes"),
		strings.HasSuffix(lower, "xes"), strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"), strings.HasSuffix(lower, "is"):
		return s
	case strings.HasSuffix(lower, "s") && len(s) > 1:
		return s[:len(s)-1]
	default:
		return s
	}
}
