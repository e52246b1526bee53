package services

// ToggleSelection returns the selection with id removed if present, otherwise
// appended. The input slice is not modified, order of the remaining ids is
// preserved, and the result never contains duplicates.
func ToggleSelection(selected []string, id string) []string {
	result := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == id {
			found = true
			continue
		}
		result = append(result, s)
	}
	if !found {
		result = append(result, id)
	}
	return result
}

// ToggleSelectAll returns the empty selection when the current selection
// already covers every visible id, otherwise exactly the visible ids. It is
// scoped to the visible subset, not to all leads.
func ToggleSelectAll(selected, visible []string) []string {
	if sameIDSet(selected, visible) {
		return []string{}
	}
	result := make([]string, len(visible))
	copy(result, visible)
	return result
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	if len(seen) != len(b) {
		return false
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
