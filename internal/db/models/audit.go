package models

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of operation an audit record describes.
type Action string

const (
	// ActionCreate records the creation of a resource.
	ActionCreate Action = "CREATE"
	// ActionRead records a point, batch or name lookup of a resource.
	ActionRead Action = "READ"
	// ActionUpdate records a mutation of a resource.
	ActionUpdate Action = "UPDATE"
	// ActionDelete records the deletion of a resource.
	ActionDelete Action = "DELETE"
	// ActionSearch records a full-text search over a resource kind.
	ActionSearch Action = "SEARCH"
)

// ResourceType names the kind of resource an audit record refers to.
type ResourceType string

const (
	// ResourceTypeUser marks audit records about users.
	ResourceTypeUser ResourceType = "USER"
	// ResourceTypeRole marks audit records about roles.
	ResourceTypeRole ResourceType = "ROLE"
	// ResourceTypePermission marks audit records about permissions.
	ResourceTypePermission ResourceType = "PERMISSION"
)

// ResourceIDType tags how the ResourceID field of an audit record is to be
// read, so one schema covers point lookups, batch lookups, name lookups and
// full-text searches uniformly.
type ResourceIDType string

const (
	// ResourceIDSingle means ResourceID holds one resource id.
	ResourceIDSingle ResourceIDType = "ID"
	// ResourceIDVec means ResourceID holds a comma-separated list of ids.
	ResourceIDVec ResourceIDType = "ID_VEC"
	// ResourceIDName means ResourceID holds a natural-key name.
	ResourceIDName ResourceIDType = "NAME"
	// ResourceIDText means ResourceID holds free search text.
	ResourceIDText ResourceIDType = "TEXT"
	// ResourceIDNone means ResourceID is empty, e.g. for list operations.
	ResourceIDNone ResourceIDType = "NONE"
)

// Audit is one immutable entry of the append-only audit ledger. It records
// who (UserID) did what (Action) to which resource. Entries are only ever
// created, never updated or deleted.
type Audit struct {
	// ID is the unique identifier for the audit record.
	ID string `bson:"_id" json:"id"`
	// UserID is the id of the acting user.
	UserID string `bson:"userId" json:"userId"`
	// Action is the kind of operation performed.
	Action Action `bson:"action" json:"action"`
	// ResourceID identifies the affected resource, interpreted per ResourceIDType.
	ResourceID string `bson:"resourceId" json:"resourceId"`
	// ResourceIDType tags the interpretation of ResourceID.
	ResourceIDType ResourceIDType `bson:"resourceIdType" json:"resourceIdType"`
	// ResourceType is the kind of resource acted on.
	ResourceType ResourceType `bson:"resourceType" json:"resourceType"`
	// CreatedAt is assigned at construction, not by the store.
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// NewAudit builds an Audit record with a freshly generated id and the current
// timestamp.
func NewAudit(userID string, action Action, resourceID string, idType ResourceIDType, resourceType ResourceType) Audit {
	return Audit{
		ID:             uuid.NewString(),
		UserID:         userID,
		Action:         action,
		ResourceID:     resourceID,
		ResourceIDType: idType,
		ResourceType:   resourceType,
		CreatedAt:      time.Now().UTC(),
	}
}
