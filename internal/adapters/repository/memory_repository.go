package repository

import (
	"context"
	"sync"

	"github.com/roommates/core/internal/domain/entities"
	"github.com/roommates/core/internal/ports"
)

// MemoryRoommateRepository keeps the collection in memory. Used by tests and the
// service layer when no backing file is wanted.
type MemoryRoommateRepository struct {
	mu        sync.RWMutex
	roommates []entities.Roommate

	// LoadErr and SaveErr, when set, are returned by the matching operation
	LoadErr error
	SaveErr error
}

// NewMemoryRoommateRepository creates an in-memory repository seeded with roommates
func NewMemoryRoommateRepository(roommates ...entities.Roommate) *MemoryRoommateRepository {
	return &MemoryRoommateRepository{roommates: append([]entities.Roommate{}, roommates...)}
}

var _ ports.RoommateRepository = (*MemoryRoommateRepository)(nil)

func (r *MemoryRoommateRepository) LoadAll(ctx context.Context) ([]entities.Roommate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return append([]entities.Roommate{}, r.roommates...), nil
}

func (r *MemoryRoommateRepository) AppendAndSave(ctx context.Context, roommate entities.Roommate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.LoadErr != nil {
		return r.LoadErr
	}
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.roommates = append(r.roommates, roommate)
	return nil
}
