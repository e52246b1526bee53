package services

import (
	"sort"
	"strings"

	"github.com/white/lead-management/internal/models"
)

// Sort directions accepted by SortLeads.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// statusRank orders statuses by pipeline stage, not alphabetically: "New" must
// sort before "Lost" regardless of alphabet. FollowUp and Converted are legacy
// stage names still present in old documents; they interleave where their
// pipeline position falls. Unmapped values rank after everything.
var statusRank = map[string]int{
	models.StatusNew:         1,
	models.StatusContacted:   2,
	models.StatusQualified:   3,
	"FollowUp":               4,
	models.StatusNegotiation: 5,
	"Converted":              6,
	models.StatusClosed:      7,
	models.StatusLost:        8,
}

// priorityRank orders priorities most-urgent first.
var priorityRank = map[string]int{
	models.PriorityHigh:   1,
	models.PriorityMedium: 2,
	models.PriorityLow:    3,
}

const unrankedValue = 99

// FilterLeads returns the leads whose name, company, or email contains the
// query, case-insensitively. An empty query matches everything. The input
// slice is never modified and relative order is preserved.
func FilterLeads(leads []models.Lead, query string) []models.Lead {
	if query == "" {
		return leads
	}

	q := strings.ToLower(query)
	filtered := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if strings.Contains(strings.ToLower(lead.Name), q) ||
			strings.Contains(strings.ToLower(lead.Company), q) ||
			strings.Contains(strings.ToLower(lead.Email), q) {
			filtered = append(filtered, lead)
		}
	}
	return filtered
}

// SortLeads returns a stably sorted copy of leads.
//
// Keys: name, company, email (case-insensitive lexicographic), status and
// priority (fixed pipeline rank, unmapped values last), lastContact
// (chronological, zero timestamps last in both directions). An unknown key
// preserves the original order. Direction "desc" reverses the ascending
// comparator; anything else is treated as "asc".
func SortLeads(leads []models.Lead, key, direction string) []models.Lead {
	sorted := make([]models.Lead, len(leads))
	copy(sorted, leads)

	desc := direction == SortDesc

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareLeads(sorted[i], sorted[j], key, desc)
		return cmp < 0
	})

	return sorted
}

func compareLeads(a, b models.Lead, key string, desc bool) int {
	var cmp int

	switch key {
	case "name":
		cmp = compareFold(a.Name, b.Name)
	case "company":
		cmp = compareFold(a.Company, b.Company)
	case "email":
		cmp = compareFold(a.Email, b.Email)
	case "status":
		cmp = compareRank(statusRank, a.Status, b.Status)
	case "priority":
		cmp = compareRank(priorityRank, a.Priority, b.Priority)
	case "lastContact":
		// Zero timestamps sort last regardless of direction.
		aZero, bZero := a.LastContact.IsZero(), b.LastContact.IsZero()
		switch {
		case aZero && bZero:
			return 0
		case aZero:
			return 1
		case bZero:
			return -1
		case a.LastContact.Before(b.LastContact):
			cmp = -1
		case a.LastContact.After(b.LastContact):
			cmp = 1
		}
	default:
		// Unknown key: every pair compares equal, stable sort preserves order.
		return 0
	}

	if desc {
		cmp = -cmp
	}
	return cmp
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareRank(ranks map[string]int, a, b string) int {
	ra, ok := ranks[a]
	if !ok {
		ra = unrankedValue
	}
	rb, ok := ranks[b]
	if !ok {
		rb = unrankedValue
	}
	return ra - rb
}
