package services

import "github.com/white/lead-management/internal/models"

// BoardColumn is one kanban column: a pipeline stage and its leads.
type BoardColumn struct {
	Status string        `json:"status"`
	Leads  []models.Lead `json:"leads"`
}

// GroupByStatus buckets leads into kanban columns, one per status in pipeline
// order. Every status gets a column even when empty. Leads with a status
// outside the enumeration land in a trailing "Other" column so they stay
// visible on the board.
func GroupByStatus(leads []models.Lead) []BoardColumn {
	statuses := models.Statuses()

	columns := make([]BoardColumn, 0, len(statuses)+1)
	index := make(map[string]int, len(statuses))
	for i, status := range statuses {
		columns = append(columns, BoardColumn{Status: status, Leads: []models.Lead{}})
		index[status] = i
	}

	var other []models.Lead
	for _, lead := range leads {
		if i, ok := index[lead.Status]; ok {
			columns[i].Leads = append(columns[i].Leads, lead)
		} else {
			other = append(other, lead)
		}
	}

	if len(other) > 0 {
		columns = append(columns, BoardColumn{Status: "Other", Leads: other})
	}

	return columns
}
