package activity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry is a single record in the activity log. Entries are append-only:
// once inserted they are never updated or deleted through the API, and
// their actor/resource references are not maintained when the referenced
// entity later changes or disappears. A dangling reference is valid
// history.
type Entry struct {
	ID         primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	ActorID    *primitive.ObjectID    `json:"userId,omitempty" bson:"user_id,omitempty"`
	Action     string                 `json:"action" bson:"action"`
	Resource   string                 `json:"resource" bson:"resource"`
	ResourceID *primitive.ObjectID    `json:"resourceId,omitempty" bson:"resource_id,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt" bson:"created_at"`
}

// Record is the input to the recorder. ActorID identifies who performed
// the action — the authenticated caller — and is never the id of the
// resource being acted upon. When no authenticated actor is known it is
// left nil, not defaulted.
type Record struct {
	Action     string
	Resource   string
	ResourceID *primitive.ObjectID
	ActorID    *primitive.ObjectID
	Details    map[string]interface{}
}
