package events

import (
	"time"

	"github.com/white/lead-management/config"
	"github.com/white/lead-management/pkg/kafka"
	"github.com/white/lead-management/pkg/uuid"
	"go.uber.org/zap"
)

// LeadAction represents the type of lead change being announced
type LeadAction string

const (
	ActionLeadCreated        LeadAction = "LEAD_CREATED"
	ActionLeadUpdated        LeadAction = "LEAD_UPDATED"
	ActionLeadDeleted        LeadAction = "LEAD_DELETED"
	ActionConversationLogged LeadAction = "CONVERSATION_LOGGED"
)

// LeadEvent is the envelope published to Kafka for every lead change.
type LeadEvent struct {
	EventID   string     `json:"event_id"`
	Action    LeadAction `json:"action"`
	LeadID    string     `json:"lead_id"`
	Timestamp time.Time  `json:"timestamp"`
	// ChangedFields lists the merged keys on updates; empty otherwise.
	ChangedFields []string `json:"changed_fields,omitempty"`
}

// Publisher emits lead change events. Publishing is fire-and-forget: a broker
// failure is logged and never surfaces to the request that caused the change.
type Publisher struct {
	producer *kafka.Producer
	topics   config.KafkaTopics
	log      *zap.Logger
}

// NewPublisher creates a lead event publisher. A nil producer disables
// publishing, which keeps local development usable without a broker.
func NewPublisher(producer *kafka.Producer, topics config.KafkaTopics, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topics:   topics,
		log:      log,
	}
}

// LeadCreated announces a new lead.
func (p *Publisher) LeadCreated(leadID string) {
	p.publish(p.topics.LeadCreated, ActionLeadCreated, leadID, nil)
}

// LeadUpdated announces a partial update, carrying the merged field names.
func (p *Publisher) LeadUpdated(leadID string, changedFields []string) {
	p.publish(p.topics.LeadUpdated, ActionLeadUpdated, leadID, changedFields)
}

// LeadDeleted announces a removal.
func (p *Publisher) LeadDeleted(leadID string) {
	p.publish(p.topics.LeadDeleted, ActionLeadDeleted, leadID, nil)
}

// ConversationLogged announces an appended conversation entry.
func (p *Publisher) ConversationLogged(leadID string) {
	p.publish(p.topics.ConversationLogged, ActionConversationLogged, leadID, nil)
}

func (p *Publisher) publish(topic string, action LeadAction, leadID string, changedFields []string) {
	if p.producer == nil || topic == "" {
		return
	}

	event := LeadEvent{
		EventID:       uuid.MustNewUUID(),
		Action:        action,
		LeadID:        leadID,
		Timestamp:     time.Now().UTC(),
		ChangedFields: changedFields,
	}

	// Keyed by lead ID so all events for one lead land on one partition.
	if err := p.producer.PublishJSON(topic, leadID, event); err != nil {
		p.log.Warn("Failed to publish lead event",
			zap.String("topic", topic),
			zap.String("action", string(action)),
			zap.String("lead_id", leadID),
			zap.Error(err),
		)
	}
}
