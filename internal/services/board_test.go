package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/white/lead-management/internal/models"
)

func TestGroupByStatusColumnsInPipelineOrder(t *testing.T) {
	columns := GroupByStatus(nil)

	require.Len(t, columns, 6)
	statuses := make([]string, len(columns))
	for i, col := range columns {
		statuses[i] = col.Status
		assert.Empty(t, col.Leads)
	}
	assert.Equal(t, models.Statuses(), statuses)
}

func TestGroupByStatusBucketsLeads(t *testing.T) {
	leads := []models.Lead{
		{Name: "a", Status: models.StatusNew},
		{Name: "b", Status: models.StatusClosed},
		{Name: "c", Status: models.StatusNew},
	}

	columns := GroupByStatus(leads)

	require.Len(t, columns, 6)
	assert.Len(t, columns[0].Leads, 2)
	assert.Equal(t, "a", columns[0].Leads[0].Name)
	assert.Equal(t, "c", columns[0].Leads[1].Name)
	assert.Len(t, columns[4].Leads, 1)
}

func TestGroupByStatusUnknownStatusLandsInOtherColumn(t *testing.T) {
	leads := []models.Lead{
		{Name: "a", Status: "FollowUp"},
	}

	columns := GroupByStatus(leads)

	require.Len(t, columns, 7)
	assert.Equal(t, "Other", columns[6].Status)
	assert.Len(t, columns[6].Leads, 1)
}
