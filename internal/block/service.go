package block

import (
	"context"
	"time"

	"github.com/resortwale/booking-backend/internal/resort"
)

type Service interface {
	BlockDate(ctx context.Context, resortID int64, date time.Time, source Source) (*Block, error)
	UnblockDate(ctx context.Context, source Source, id int64) error
	ListByResort(ctx context.Context, resortID int64, source Source) ([]*Block, error)
	IsDateBlocked(ctx context.Context, resortID int64, date time.Time, source Source) (bool, error)
}

type service struct {
	repo          Repository
	resortService resort.Service
}

func NewService(repo Repository, resortService resort.Service) Service {
	return &service{
		repo:          repo,
		resortService: resortService,
	}
}

func (s *service) BlockDate(ctx context.Context, resortID int64, date time.Time, source Source) (*Block, error) {
	if source != SourceAdmin && source != SourceOwner {
		return nil, ErrUnknownSource
	}

	// Validate resort exists before attaching a block.
	if _, err := s.resortService.GetByID(ctx, resortID); err != nil {
		return nil, err
	}

	b := &Block{
		ResortID:  resortID,
		BlockDate: date,
		Source:    source,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UnblockDate(ctx context.Context, source Source, id int64) error {
	return s.repo.Delete(ctx, source, id)
}

func (s *service) ListByResort(ctx context.Context, resortID int64, source Source) ([]*Block, error) {
	if _, err := s.resortService.GetByID(ctx, resortID); err != nil {
		return nil, err
	}
	return s.repo.ListByResort(ctx, resortID, source)
}

func (s *service) IsDateBlocked(ctx context.Context, resortID int64, date time.Time, source Source) (bool, error) {
	return s.repo.IsDateBlocked(ctx, resortID, date, source)
}
