package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID validates a client-supplied identifier and converts it to the
// store's native ObjectID form. Every path, query and body identifier goes
// through this before it can reach a storage filter; raw strings are never
// used as document keys.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidReference
	}
	return id, nil
}

// ParseOptionalID behaves like ParseID but maps an empty input to nil
// instead of an error, for fields where the reference is optional.
func ParseOptionalID(raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := ParseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
