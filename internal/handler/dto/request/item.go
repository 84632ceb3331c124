package request

import "github.com/google/uuid"

type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
}

type PatchItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
