package models

// Action vocabulary is open-ended (free-form strings, no closed enum);
// these are the values the entity services write themselves.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionView   = "view"
)

// Resource type names as stored in the activity log.
const (
	ResourceUser    = "user"
	ResourceProduct = "product"
	ResourceOrder   = "order"
)

// TopActivity is one row of the "top actions by frequency" aggregate.
type TopActivity struct {
	Action string `json:"action" bson:"action"`
	Count  int64  `json:"count" bson:"count"`
}
