package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note represents a note owned by a tenant. TenantID always equals the
// author's tenant id at creation time and never changes.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    uuid.UUID `json:"userId"`
	TenantID  uuid.UUID `json:"tenantId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// AuthorEmail is populated from a join on users when reading.
	AuthorEmail string `json:"authorEmail,omitempty"`
}
