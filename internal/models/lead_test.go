package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeadRequestValidation(t *testing.T) {
	valid := CreateLeadRequest{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate())

	missingCompany := valid
	missingCompany.Company = ""
	assert.Error(t, missingCompany.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	badStatus := valid
	badStatus.Status = "Wishlisted"
	assert.Error(t, badStatus.Validate())

	badPriority := valid
	badPriority.Priority = "Urgent"
	assert.Error(t, badPriority.Validate())
}

func TestNewLeadAppliesDefaultsAndSeedsConversation(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	req := CreateLeadRequest{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"}

	lead := req.NewLead(now)

	assert.Equal(t, StatusNew, lead.Status)
	assert.Equal(t, PriorityMedium, lead.Priority)
	assert.Equal(t, SourceOther, lead.Source)
	assert.Equal(t, now, lead.CreatedAt)
	assert.Equal(t, now, lead.LastContact)
	require.Len(t, lead.Conversation, 1)
	assert.Equal(t, "Lead created", lead.Conversation[0].Message)
	assert.Equal(t, now, lead.Conversation[0].Timestamp)
}

func TestNewLeadKeepsExplicitEnumValues(t *testing.T) {
	now := time.Now()
	req := CreateLeadRequest{
		Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com",
		Status: StatusNegotiation, Priority: PriorityHigh, Source: SourcePhone,
	}

	lead := req.NewLead(now)
	assert.Equal(t, StatusNegotiation, lead.Status)
	assert.Equal(t, PriorityHigh, lead.Priority)
	assert.Equal(t, SourcePhone, lead.Source)
}

func TestUpdateLeadRequestChangedFields(t *testing.T) {
	status := StatusQualified
	notes := "met at conference"
	req := UpdateLeadRequest{Status: &status, Notes: &notes}

	assert.Equal(t, []string{"status", "notes"}, req.ChangedFields())
	assert.False(t, req.IsEmpty())
	assert.True(t, UpdateLeadRequest{}.IsEmpty())
}

func TestUpdateLeadRequestValidation(t *testing.T) {
	status := StatusQualified
	assert.NoError(t, UpdateLeadRequest{Status: &status}.Validate())

	bad := "Wishlisted"
	assert.Error(t, UpdateLeadRequest{Status: &bad}.Validate())

	empty := ""
	assert.Error(t, UpdateLeadRequest{Name: &empty}.Validate())

	badEmail := "nope"
	assert.Error(t, UpdateLeadRequest{Email: &badEmail}.Validate())

	// An empty update is valid; it just merges nothing.
	assert.NoError(t, UpdateLeadRequest{}.Validate())
}

func TestEnumHelpers(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("FollowUp"))

	assert.True(t, IsValidPriority(PriorityLow))
	assert.False(t, IsValidPriority(""))

	assert.True(t, IsValidSource(SourceSocialMedia))
	assert.False(t, IsValidSource("Carrier Pigeon"))
}
