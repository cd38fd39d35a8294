package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Test Bank", "test_bank"},
		{"diacritics", "Crédit Mutuel", "credit_mutuel"},
		{"punctuation stripped", "N26 Bank (Germany)", "n26_bank_germany"},
		{"internal whitespace collapsed", "  First   National\tBank ", "first_national_bank"},
		{"already slug", "test_bank", "test_bank"},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	// Same name against an empty universe always yields the same tag.
	a := Generate("Test Bank", NewSet(), "")
	b := Generate("Test Bank", NewSet(), "")
	assert.Equal(t, "test_bank", a)
	assert.Equal(t, a, b)
}

func TestGenerateCollisionSuffix(t *testing.T) {
	existing := NewSet()

	first := Generate("Test Bank", existing, "")
	existing.Add(first)

	second := Generate("Test Bank", existing, "")
	existing.Add(second)

	third := Generate("Test Bank", existing, "")

	assert.Equal(t, "test_bank", first)
	assert.Equal(t, "test_bank_01", second)
	assert.Equal(t, "test_bank_02", third)
}

func TestGeneratePrefix(t *testing.T) {
	existing := NewSet("banktrack_test_bank")

	got := Generate("Test Bank", existing, "banktrack_")
	assert.Equal(t, "banktrack_test_bank_01", got)

	// The prefix scopes uniqueness: the bare slug being taken is
	// irrelevant to a prefixed generation.
	got = Generate("Test Bank", NewSet("test_bank"), "banktrack_")
	assert.Equal(t, "banktrack_test_bank", got)
}

func TestGenerateEmptyName(t *testing.T) {
	got := Generate("???", NewSet(), "")
	assert.Equal(t, "unnamed", got)
}

func TestGenerateDoesNotMutateSet(t *testing.T) {
	existing := NewSet("test_bank")
	_ = Generate("Test Bank", existing, "")
	assert.Len(t, existing, 1)
}
