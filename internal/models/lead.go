package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses, in pipeline order.
const (
	StatusNew         = "New"
	StatusContacted   = "Contacted"
	StatusQualified   = "Qualified"
	StatusNegotiation = "Negotiation"
	StatusClosed      = "Closed"
	StatusLost        = "Lost"
)

// Lead priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Lead sources.
const (
	SourceEmail       = "Email"
	SourcePhone       = "Phone"
	SourceWebsite     = "Website"
	SourceSocialMedia = "Social Media"
	SourceOther       = "Other"
)

// Statuses returns the closed status enumeration in pipeline order.
func Statuses() []string {
	return []string{StatusNew, StatusContacted, StatusQualified, StatusNegotiation, StatusClosed, StatusLost}
}

// IsValidStatus reports whether s is a member of the status enumeration.
func IsValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusNegotiation, StatusClosed, StatusLost:
		return true
	}
	return false
}

// IsValidPriority reports whether p is a member of the priority enumeration.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// IsValidSource reports whether s is a member of the source enumeration.
func IsValidSource(s string) bool {
	switch s {
	case SourceEmail, SourcePhone, SourceWebsite, SourceSocialMedia, SourceOther:
		return true
	}
	return false
}

// ConversationEntry is a timestamped free-text note on a lead's history.
// Entries are ordered by append order, not necessarily by timestamp.
type ConversationEntry struct {
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Lead is the central CRM entity, stored in the "leads" collection.
type Lead struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string              `bson:"name" json:"name"`
	Company      string              `bson:"company" json:"company"`
	Email        string              `bson:"email" json:"email"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Status       string              `bson:"status" json:"status"`
	Priority     string              `bson:"priority" json:"priority"`
	Source       string              `bson:"source" json:"source"`
	Website      string              `bson:"website,omitempty" json:"website,omitempty"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	LastContact  time.Time           `bson:"lastContact" json:"lastContact"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	Conversation []ConversationEntry `bson:"conversation" json:"conversation"`
	AISuggestion bool                `bson:"aiSuggestion,omitempty" json:"aiSuggestion,omitempty"`
}

// CreateLeadRequest is the payload for POST /leads.
type CreateLeadRequest struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Source   string `json:"source,omitempty"`
	Website  string `json:"website,omitempty"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Validate enforces required fields and enum membership at the API boundary.
func (r CreateLeadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Company, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Status, validation.In(StatusNew, StatusContacted, StatusQualified, StatusNegotiation, StatusClosed, StatusLost)),
		validation.Field(&r.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		validation.Field(&r.Source, validation.In(SourceEmail, SourcePhone, SourceWebsite, SourceSocialMedia, SourceOther)),
	)
}

// NewLead builds the initial lead document from a create request.
// Defaults are applied here, not in the store: status New, priority Medium,
// source Other, lastContact/createdAt now, and a seed conversation entry.
func (r CreateLeadRequest) NewLead(now time.Time) *Lead {
	lead := &Lead{
		Name:        r.Name,
		Company:     r.Company,
		Email:       r.Email,
		Phone:       r.Phone,
		Status:      r.Status,
		Priority:    r.Priority,
		Source:      r.Source,
		Website:     r.Website,
		Address:     r.Address,
		Notes:       r.Notes,
		LastContact: now,
		CreatedAt:   now,
		Conversation: []ConversationEntry{
			{Message: "Lead created", Timestamp: now},
		},
	}
	if lead.Status == "" {
		lead.Status = StatusNew
	}
	if lead.Priority == "" {
		lead.Priority = PriorityMedium
	}
	if lead.Source == "" {
		lead.Source = SourceOther
	}
	return lead
}

// UpdateLeadRequest is the payload for PATCH /leads/{id}. Every field is
// optional; only non-nil fields are written. The identifier is not updatable
// and is stripped before the merge.
type UpdateLeadRequest struct {
	Name         *string    `json:"name,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	Source       *string    `json:"source,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	LastContact  *time.Time `json:"lastContact,omitempty"`
	AISuggestion *bool      `json:"aiSuggestion,omitempty"`
}

// Validate checks enum membership for the fields that are present.
func (r UpdateLeadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Company, validation.NilOrNotEmpty),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Status, validation.In(StatusNew, StatusContacted, StatusQualified, StatusNegotiation, StatusClosed, StatusLost)),
		validation.Field(&r.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		validation.Field(&r.Source, validation.In(SourceEmail, SourcePhone, SourceWebsite, SourceSocialMedia, SourceOther)),
	)
}

// IsEmpty reports whether the request carries no fields at all.
func (r UpdateLeadRequest) IsEmpty() bool {
	return len(r.ChangedFields()) == 0
}

// ChangedFields returns the names of the fields present in the request, in
// declaration order.
func (r UpdateLeadRequest) ChangedFields() []string {
	var fields []string
	if r.Name != nil {
		fields = append(fields, "name")
	}
	if r.Company != nil {
		fields = append(fields, "company")
	}
	if r.Email != nil {
		fields = append(fields, "email")
	}
	if r.Phone != nil {
		fields = append(fields, "phone")
	}
	if r.Status != nil {
		fields = append(fields, "status")
	}
	if r.Priority != nil {
		fields = append(fields, "priority")
	}
	if r.Source != nil {
		fields = append(fields, "source")
	}
	if r.Website != nil {
		fields = append(fields, "website")
	}
	if r.Address != nil {
		fields = append(fields, "address")
	}
	if r.Notes != nil {
		fields = append(fields, "notes")
	}
	if r.LastContact != nil {
		fields = append(fields, "lastContact")
	}
	if r.AISuggestion != nil {
		fields = append(fields, "aiSuggestion")
	}
	return fields
}

// LogConversationRequest is the payload for POST /leads/{id}/conversation.
type LogConversationRequest struct {
	Message string `json:"message"`
}

// Validate requires a non-empty message.
func (r LogConversationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required),
	)
}
