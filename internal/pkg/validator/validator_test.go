package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"worker@example.com",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
		"user name@example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"yes", true, true},
		{"false", false, true},
		{"0", false, true},
		{"no", false, true},
		{" n ", false, true},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		value, ok := ParseBool(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.value, value, tt.input)
	}
}

func TestIsValidDateTime(t *testing.T) {
	parsed, ok := IsValidDateTime("2026-06-15T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2026, parsed.Year())

	_, ok = IsValidDateTime("2026-06-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-06-15T10:30:00.123Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-06-15")
	assert.False(t, ok)

	_, ok = IsValidDateTime("not-a-date")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	categories := []string{"jobs", "housing", "rides", "gigs"}

	assert.True(t, IsInSlice("jobs", categories))
	assert.False(t, IsInSlice("pets", categories))
	assert.False(t, IsInSlice("", categories))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "category", Message: "invalid category"},
	}

	assert.Contains(t, errs.Error(), "title: title is required")
	assert.Contains(t, errs.Error(), "category: invalid category")

	m := errs.ToMap()
	assert.Equal(t, "title is required", m["title"])
	assert.Equal(t, "invalid category", m["category"])
}
