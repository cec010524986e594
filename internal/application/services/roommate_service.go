package services

import (
	"context"
	"fmt"

	"github.com/roommates/core/internal/domain/entities"
	"github.com/roommates/core/internal/infrastructure/logger"
	"github.com/roommates/core/internal/ports"
)

// RoommateService handles roommate-related operations
type RoommateService struct {
	roommateRepo ports.RoommateRepository
	generator    ports.RoommateGenerator
	logger       *logger.Logger
}

// NewRoommateService creates a new roommate service
func NewRoommateService(roommateRepo ports.RoommateRepository, generator ports.RoommateGenerator, logger *logger.Logger) *RoommateService {
	return &RoommateService{
		roommateRepo: roommateRepo,
		generator:    generator,
		logger:       logger.WithComponent("roommate_service"),
	}
}

var _ ports.RoommateService = (*RoommateService)(nil)

// CreateRoommate generates a new roommate and appends it to the collection
func (s *RoommateService) CreateRoommate(ctx context.Context) (*entities.Roommate, error) {
	roommate, err := s.generator.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate roommate: %w", err)
	}

	if err := s.roommateRepo.AppendAndSave(ctx, roommate); err != nil {
		return nil, fmt.Errorf("failed to save roommate %s: %w", roommate.ID, err)
	}

	s.logger.Infow("Roommate created", "roommate_id", roommate.ID, "name", roommate.Name)

	return &roommate, nil
}

// ListRoommates returns every stored roommate in insertion order
func (s *RoommateService) ListRoommates(ctx context.Context) ([]entities.Roommate, error) {
	roommates, err := s.roommateRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roommates: %w", err)
	}

	return roommates, nil
}
