package ports

import (
	"context"

	"github.com/roommates/core/internal/domain/entities"
)

// RoommateGenerator produces a new roommate from an external identity source
type RoommateGenerator interface {
	Generate(ctx context.Context) (entities.Roommate, error)
}

// RoommateService defines the interface for roommate business logic
type RoommateService interface {
	CreateRoommate(ctx context.Context) (*entities.Roommate, error)
	ListRoommates(ctx context.Context) ([]entities.Roommate, error)
}
