package models

import (
	"time"

	"github.com/google/uuid"
)

// Quick message roles.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// QuickMessage is one line of the quick-command chat log.
type QuickMessage struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	UserID            uuid.UUID  `db:"user_id" json:"userId"`
	Role              string     `db:"role" json:"role"`
	Content           string     `db:"content" json:"content"`
	RelatedEntityID   *uuid.UUID `db:"related_entity_id" json:"relatedEntityId"`
	RelatedEntityType *string    `db:"related_entity_type" json:"relatedEntityType"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
}
