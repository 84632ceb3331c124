package repository

import (
	"context"

	"lendkit/internal/domain/request"
	"lendkit/internal/infra"
	"lendkit/internal/infra/db"

	"github.com/google/uuid"
)

type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

func (r *RequestRepository) Create(ctx context.Context, dbtx db.DBTX, req *request.Request) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO requests (id, requester_id, description, created_at)
		 VALUES ($1, $2, $3, $4)`,
		req.ID(), req.RequesterID(), req.Description(), req.CreatedAt())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create request", err)
	}
	return req.ID(), nil
}
