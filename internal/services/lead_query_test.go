package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/white/lead-management/internal/models"
)

func lead(name, company, email string) models.Lead {
	return models.Lead{Name: name, Company: company, Email: email}
}

func sampleLeads() []models.Lead {
	return []models.Lead{
		{Name: "Sarah Johnson", Company: "Acme Inc.", Email: "sarah.j@acmeinc.com", Status: models.StatusNew, Priority: models.PriorityHigh, LastContact: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)},
		{Name: "Michael Chen", Company: "TechCorp", Email: "michael@techcorp.io", Status: models.StatusContacted, Priority: models.PriorityMedium, LastContact: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)},
		{Name: "Emma Williams", Company: "Global Systems", Email: "e.williams@globalsys.co", Status: models.StatusQualified, Priority: models.PriorityLow, LastContact: time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)},
		{Name: "James Taylor", Company: "Innovate Solutions", Email: "james@innovatesol.com", Status: models.StatusLost, Priority: models.PriorityHigh, LastContact: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)},
	}
}

func TestFilterLeadsEmptyQueryReturnsAllInOrder(t *testing.T) {
	leads := sampleLeads()
	filtered := FilterLeads(leads, "")
	assert.Equal(t, leads, filtered)
}

func TestFilterLeadsMatchesNameCompanyOrEmail(t *testing.T) {
	leads := sampleLeads()

	byName := FilterLeads(leads, "sarah")
	require.Len(t, byName, 1)
	assert.Equal(t, "Sarah Johnson", byName[0].Name)

	byCompany := FilterLeads(leads, "techcorp")
	require.Len(t, byCompany, 1)
	assert.Equal(t, "Michael Chen", byCompany[0].Name)

	byEmail := FilterLeads(leads, "globalsys.co")
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Emma Williams", byEmail[0].Name)
}

func TestFilterLeadsIsCaseInsensitive(t *testing.T) {
	leads := sampleLeads()
	assert.Equal(t, FilterLeads(leads, "ACME"), FilterLeads(leads, "acme"))
}

func TestFilterLeadsReturnsSubsequence(t *testing.T) {
	leads := sampleLeads()
	filtered := FilterLeads(leads, "a")

	// Every match satisfies the predicate and keeps relative order.
	i := 0
	for _, f := range filtered {
		matches := strings.Contains(strings.ToLower(f.Name), "a") ||
			strings.Contains(strings.ToLower(f.Company), "a") ||
			strings.Contains(strings.ToLower(f.Email), "a")
		assert.True(t, matches)

		for ; i < len(leads); i++ {
			if leads[i].Name == f.Name {
				break
			}
		}
		require.Less(t, i, len(leads), "filtered element %q out of order", f.Name)
	}
}

func TestSortLeadsAscReversedEqualsDesc(t *testing.T) {
	leads := sampleLeads()

	for _, key := range []string{"name", "company", "email"} {
		asc := SortLeads(leads, key, SortAsc)
		desc := SortLeads(leads, key, SortDesc)

		reversed := make([]models.Lead, len(asc))
		for i, l := range asc {
			reversed[len(asc)-1-i] = l
		}
		assert.Equal(t, reversed, desc, "key %s", key)
	}
}

func TestSortLeadsStatusPipelineOrder(t *testing.T) {
	leads := []models.Lead{
		lead("e", "", ""), lead("a", "", ""), lead("c", "", ""), lead("d", "", ""), lead("b", "", ""),
	}
	leads[0].Status = models.StatusLost
	leads[1].Status = models.StatusNew
	leads[2].Status = "FollowUp"
	leads[3].Status = "Converted"
	leads[4].Status = models.StatusContacted

	sorted := SortLeads(leads, "status", SortAsc)

	got := make([]string, len(sorted))
	for i, l := range sorted {
		got[i] = l.Status
	}
	assert.Equal(t, []string{"New", "Contacted", "FollowUp", "Converted", "Lost"}, got)
}

func TestSortLeadsUnrecognizedStatusSortsAfterLost(t *testing.T) {
	leads := []models.Lead{
		{Name: "x", Status: "Wishlisted"},
		{Name: "y", Status: models.StatusLost},
		{Name: "z", Status: models.StatusNew},
	}

	sorted := SortLeads(leads, "status", SortAsc)
	assert.Equal(t, "Wishlisted", sorted[2].Status)
}

func TestSortLeadsPriorityHighFirst(t *testing.T) {
	leads := sampleLeads()
	sorted := SortLeads(leads, "priority", SortAsc)

	assert.Equal(t, models.PriorityHigh, sorted[0].Priority)
	assert.Equal(t, models.PriorityLow, sorted[len(sorted)-1].Priority)
}

func TestSortLeadsIdempotent(t *testing.T) {
	leads := sampleLeads()

	for _, key := range []string{"name", "status", "priority", "lastContact"} {
		once := SortLeads(leads, key, SortAsc)
		twice := SortLeads(once, key, SortAsc)
		assert.Equal(t, once, twice, "key %s", key)
	}
}

func TestSortLeadsUnknownKeyPreservesOrder(t *testing.T) {
	leads := sampleLeads()
	assert.Equal(t, leads, SortLeads(leads, "shoeSize", SortAsc))
	assert.Equal(t, leads, SortLeads(leads, "shoeSize", SortDesc))
}

func TestSortLeadsLastContactChronological(t *testing.T) {
	leads := sampleLeads()
	sorted := SortLeads(leads, "lastContact", SortAsc)

	for i := 1; i < len(sorted); i++ {
		assert.False(t, sorted[i].LastContact.Before(sorted[i-1].LastContact))
	}
}

func TestSortLeadsZeroLastContactSortsLastBothDirections(t *testing.T) {
	leads := []models.Lead{
		{Name: "unset"},
		{Name: "old", LastContact: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "recent", LastContact: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	asc := SortLeads(leads, "lastContact", SortAsc)
	assert.Equal(t, "unset", asc[2].Name)

	desc := SortLeads(leads, "lastContact", SortDesc)
	assert.Equal(t, "unset", desc[2].Name)
	assert.Equal(t, "recent", desc[0].Name)
}

func TestSortLeadsDoesNotModifyInput(t *testing.T) {
	leads := sampleLeads()
	original := make([]models.Lead, len(leads))
	copy(original, leads)

	SortLeads(leads, "name", SortDesc)
	assert.Equal(t, original, leads)
}
