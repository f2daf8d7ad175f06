package model

import "time"

type Project struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Version       string    `json:"version"`
	RepositoryURL string    `json:"repository_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Transient: not stored in DB, set by handlers/queries
	GroupIDs []string `json:"group_ids,omitempty"`
}
