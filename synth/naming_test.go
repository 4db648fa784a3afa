package synth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GGROM1/schemantic-sub000/internal/naming"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw        string
		convention Convention
		expected   string
	}{
		{"user_name", ConventionLowerCamel, "userName"},
		{"user_name", ConventionSnake, "user_name"},
		{"user_name", ConventionUpperCamel, "UserName"},
		{"user--name!!", ConventionLowerCamel, "userName"},
		{"First Name", ConventionSnake, "first_name"},
		{"2fast", ConventionLowerCamel, "_2fast"},
		{"", ConventionLowerCamel, "field"},
		{"!!!", ConventionSnake, "field"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.raw, tt.convention), func(t *testing.T) {
			got := Normalize(tt.raw, tt.convention)
			assert.Equal(t, tt.expected, got)
			assert.True(t, naming.IsIdentifier(got), "Normalize must return an identifier, got %q", got)
		})
	}
}

// Naming is total: no input produces an empty or invalid identifier.
func TestNormalizeTotality(t *testing.T) {
	inputs := []string{"", " ", "---", "日本語", "a b c", "\x00\x01", "🚀", "123", "_"}
	for _, raw := range inputs {
		for _, conv := range []Convention{ConventionLowerCamel, ConventionSnake, ConventionUpperCamel} {
			got := Normalize(raw, conv)
			assert.NotEmpty(t, got, "Normalize(%q, %s)", raw, conv)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		raw, prefix, suffix, expected string
	}{
		{"pet", "", "", "Pet"},
		{"pet_store", "", "", "PetStore"},
		{"pet", "I", "", "IPet"},
		{"pet", "", "Dto", "PetDto"},
		{"pet", "Api", "Model", "ApiPetModel"},
		{"", "", "", "Type"},
		{"2fa", "", "", "T2fa"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.raw, tt.prefix, tt.suffix))
		})
	}
}

// Format always upper-camels the core even when the member convention is
// snake: type identifiers are conventionally UpperCamel.
func TestFormatIgnoresConvention(t *testing.T) {
	assert.Equal(t, "UserProfile", Format("user_profile", "", ""))
}

func TestParseConvention(t *testing.T) {
	for spelling, want := range map[string]Convention{
		"":            ConventionLowerCamel,
		"lower-camel": ConventionLowerCamel,
		"camelCase":   ConventionLowerCamel,
		"snake":       ConventionSnake,
		"snake_case":  ConventionSnake,
		"upper-camel": ConventionUpperCamel,
		"PascalCase":  ConventionUpperCamel,
	} {
		got, err := ParseConvention(spelling)
		assert.NoError(t, err, spelling)
		assert.Equal(t, want, got, spelling)
	}

	_, err := ParseConvention("kebab")
	assert.Error(t, err)
}

func TestNamingStateSequence(t *testing.T) {
	n := NewNamingState()
	assert.Equal(t, "GeneratedType", n.Next(FamilyType))
	assert.Equal(t, "GeneratedType2", n.Next(FamilyType))
	assert.Equal(t, "GeneratedEnum", n.Next(FamilyEnum))
	assert.Equal(t, "GeneratedType3", n.Next(FamilyType))
}

func TestNamingStateSkipsReserved(t *testing.T) {
	n := NewNamingState()
	n.Reserve("GeneratedType")
	n.Reserve("GeneratedType2")
	assert.Equal(t, "GeneratedType3", n.Next(FamilyType))
	assert.True(t, n.IsUsed("GeneratedType3"))
}

func TestEnumKey(t *testing.T) {
	tests := []struct {
		value    any
		index    int
		expected string
	}{
		{"active", 0, "ACTIVE"},
		{"a b", 1, "A_B"},
		{"a--b", 2, "A_B"},
		{"", 0, "VALUE_0"},
		{"🚀🚀", 3, "VALUE_3"},
		{"_trailing_", 4, "TRAILING"},
		{"2fa", 5, "VALUE_2FA"},
		{42, 0, "VALUE_42"},
		{int64(7), 1, "VALUE_7"},
		{-3, 2, "VALUE_MINUS_3"},
		{2.5, 3, "VALUE_2_5"},
		{true, 0, "TRUE"},
		{false, 1, "FALSE"},
		{nil, 0, "NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := enumKey(tt.value, tt.index)
			assert.Equal(t, tt.expected, got)
			assert.True(t, naming.IsIdentifier(got))
		})
	}
}
