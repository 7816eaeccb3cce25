package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceProfileIsFullReplace(t *testing.T) {
	u := &User{
		Name:          "Alice",
		Location:      "Berlin",
		SkillsOffered: []string{"Guitar", "Cooking"},
		SkillsWanted:  []string{"Piano"},
		Availability:  []Weekday{Monday, Friday},
		Public:        true,
	}

	u.ReplaceProfile(ProfileUpdate{
		Name:          "Alice B",
		SkillsOffered: []string{"Chess"},
		Public:        false,
	})

	assert.Equal(t, "Alice B", u.Name)
	assert.Equal(t, []string{"Chess"}, u.SkillsOffered)
	assert.Equal(t, []string{}, u.SkillsWanted, "omitted lists reset to empty, not merged")
	assert.Equal(t, []Weekday{}, u.Availability)
	assert.Equal(t, "", u.Location)
	assert.False(t, u.Public)
}

func TestReplaceProfileKeepsNameWhenOmitted(t *testing.T) {
	u := &User{Name: "Alice"}

	u.ReplaceProfile(ProfileUpdate{SkillsOffered: []string{"Chess"}, Public: true})

	assert.Equal(t, "Alice", u.Name)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestDirectoryEntryOfNeverReturnsNilSlices(t *testing.T) {
	entry := DirectoryEntryOf(&User{Name: "Bob", Email: "bob@example.com"})

	require.NotNil(t, entry.SkillsOffered)
	require.NotNil(t, entry.SkillsWanted)
	assert.Empty(t, entry.SkillsOffered)
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays([]string{"monday", "Tue", "SATURDAY"})
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Tuesday, Saturday}, days)

	_, err = ParseWeekdays([]string{"Mon", "someday"})
	require.Error(t, err)
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}
