package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Common repository errors
var (
	// ErrNotFound is returned when a document is not found
	ErrNotFound = mongo.ErrNoDocuments

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidID is returned when an identifier cannot be parsed into an ObjectID.
	// Handlers map this to a 400, not a 404.
	ErrInvalidID = errors.New("invalid lead ID")
)

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrLeadNotFound)
}

// IsInvalidID checks if an error indicates a malformed identifier
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

// WrapNotFound wraps mongo.ErrNoDocuments with a domain-specific error.
// This preserves the original MongoDB error while adding domain context.
func WrapNotFound(err error, domainErr error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %w", domainErr, err)
	}
	return err
}

// ParseObjectID converts a path identifier into an ObjectID, mapping parse
// failures to ErrInvalidID.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
