package ports

import (
	"context"

	"github.com/roommates/core/internal/domain/entities"
)

// RoommateRepository defines the interface for roommate collection persistence.
// Implementations read and rewrite the whole collection on every call.
type RoommateRepository interface {
	LoadAll(ctx context.Context) ([]entities.Roommate, error)
	AppendAndSave(ctx context.Context, roommate entities.Roommate) error
}
