package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/white/lead-management/internal/models"
	"github.com/white/lead-management/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLeadRepository stores leads in the "leads" collection.
type MongoLeadRepository struct {
	client     *mongodb.Client
	collection *mongo.Collection
}

func NewMongoLeadRepository(client *mongodb.Client) *MongoLeadRepository {
	return &MongoLeadRepository{
		client:     client,
		collection: client.Collection("leads"),
	}
}

// List returns all leads, newest-created first.
func (r *MongoLeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("error decoding leads: %w", err)
	}

	return leads, nil
}

// GetByID retrieves a lead by its hex identifier.
func (r *MongoLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var lead models.Lead
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, WrapNotFound(err, ErrLeadNotFound)
		}
		return nil, fmt.Errorf("error finding lead: %w", err)
	}

	return &lead, nil
}

// Create inserts a new lead document and fills in its generated identifier.
func (r *MongoLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	result, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return fmt.Errorf("error creating lead: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lead.ID = oid
	}
	return nil
}

// Update applies a partial merge update and returns the updated document.
// Only fields present in the request are written; everything else is untouched.
func (r *MongoLeadRepository) Update(ctx context.Context, id string, update models.UpdateLeadRequest) (*models.Lead, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Company != nil {
		set["company"] = *update.Company
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Source != nil {
		set["source"] = *update.Source
	}
	if update.Website != nil {
		set["website"] = *update.Website
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.LastContact != nil {
		set["lastContact"] = *update.LastContact
	}
	if update.AISuggestion != nil {
		set["aiSuggestion"] = *update.AISuggestion
	}

	if len(set) == 0 {
		// Nothing to merge; behave like a read.
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var lead models.Lead
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, WrapNotFound(err, ErrLeadNotFound)
		}
		return nil, fmt.Errorf("error updating lead: %w", err)
	}

	return &lead, nil
}

// Delete removes a lead by identifier.
func (r *MongoLeadRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting lead: %w", err)
	}
	if result.DeletedCount == 0 {
		return WrapNotFound(mongo.ErrNoDocuments, ErrLeadNotFound)
	}

	return nil
}

// AppendConversation pushes one entry onto the lead's conversation log and
// bumps lastContact. The push is a single atomic update, so two concurrent
// log actions on the same lead cannot lose an entry.
func (r *MongoLeadRepository) AppendConversation(ctx context.Context, id string, message string) (*models.Lead, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := models.ConversationEntry{Message: message, Timestamp: now}

	update := bson.M{
		"$push": bson.M{"conversation": entry},
		"$set":  bson.M{"lastContact": now},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var lead models.Lead
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, WrapNotFound(err, ErrLeadNotFound)
		}
		return nil, fmt.Errorf("error logging conversation: %w", err)
	}

	return &lead, nil
}

// CountByStatus aggregates lead counts per status for the dashboard.
func (r *MongoLeadRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error counting leads by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding status counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountByPriority aggregates lead counts per priority for the dashboard.
func (r *MongoLeadRepository) CountByPriority(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$priority", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error counting leads by priority: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Priority string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding priority counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Priority] = row.Count
	}
	return counts, nil
}
