package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleSelectionAddsMissingID(t *testing.T) {
	selected := ToggleSelection([]string{"a", "b"}, "c")
	assert.Equal(t, []string{"a", "b", "c"}, selected)
}

func TestToggleSelectionRemovesPresentID(t *testing.T) {
	selected := ToggleSelection([]string{"a", "b", "c"}, "b")
	assert.Equal(t, []string{"a", "c"}, selected)
}

func TestToggleSelectionIsItsOwnInverse(t *testing.T) {
	original := []string{"a", "b", "c"}

	once := ToggleSelection(original, "b")
	twice := ToggleSelection(once, "b")
	assert.ElementsMatch(t, original, twice)

	once = ToggleSelection(original, "d")
	twice = ToggleSelection(once, "d")
	assert.ElementsMatch(t, original, twice)
}

func TestToggleSelectionNeverDuplicates(t *testing.T) {
	selected := ToggleSelection([]string{"a"}, "a")
	selected = ToggleSelection(selected, "a")
	assert.Equal(t, []string{"a"}, selected)
}

func TestToggleSelectAllSelectsVisibleSet(t *testing.T) {
	visible := []string{"a", "b", "c"}

	selected := ToggleSelectAll([]string{}, visible)
	assert.Equal(t, visible, selected)
}

func TestToggleSelectAllClearsWhenAllSelected(t *testing.T) {
	visible := []string{"a", "b", "c"}

	selected := ToggleSelectAll([]string{"c", "a", "b"}, visible)
	assert.Empty(t, selected)
}

func TestToggleSelectAllTwiceRestoresSelection(t *testing.T) {
	visible := []string{"a", "b", "c"}

	// empty -> all -> empty
	once := ToggleSelectAll([]string{}, visible)
	twice := ToggleSelectAll(once, visible)
	assert.Empty(t, twice)

	// all -> empty -> all
	once = ToggleSelectAll(visible, visible)
	twice = ToggleSelectAll(once, visible)
	assert.ElementsMatch(t, visible, twice)
}

func TestToggleSelectAllScopedToVisibleSubset(t *testing.T) {
	// A partial selection outside the visible set still yields exactly the
	// visible ids, not a union.
	selected := ToggleSelectAll([]string{"z"}, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, selected)
}
