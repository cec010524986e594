package repository

import (
	"context"

	"github.com/roommates/core/internal/domain/entities"
	"github.com/roommates/core/internal/infrastructure/logger"
	"github.com/roommates/core/internal/ports"
)

// LoggingRoommateRepository logs every store access of the wrapped repository
type LoggingRoommateRepository struct {
	next   ports.RoommateRepository
	path   string
	logger *logger.Logger
}

// NewLoggingRoommateRepository wraps next; path identifies the backing store in log entries
func NewLoggingRoommateRepository(next ports.RoommateRepository, path string, logger *logger.Logger) *LoggingRoommateRepository {
	return &LoggingRoommateRepository{
		next:   next,
		path:   path,
		logger: logger.WithComponent("roommate_store"),
	}
}

var _ ports.RoommateRepository = (*LoggingRoommateRepository)(nil)

func (r *LoggingRoommateRepository) LoadAll(ctx context.Context) ([]entities.Roommate, error) {
	roommates, err := r.next.LoadAll(ctx)
	r.logger.LogStoreOperation("load_all", r.path, len(roommates), err)
	return roommates, err
}

func (r *LoggingRoommateRepository) AppendAndSave(ctx context.Context, roommate entities.Roommate) error {
	err := r.next.AppendAndSave(ctx, roommate)
	r.logger.LogStoreOperation("append_and_save", r.path, 1, err)
	return err
}
