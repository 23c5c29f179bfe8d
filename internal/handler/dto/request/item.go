package request

import "github.com/google/uuid"

type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
}

// UpdateItemRequest carries patch semantics: omitted fields keep their
// stored values.
type UpdateItemRequest struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Available   *bool      `json:"available,omitempty"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
}
