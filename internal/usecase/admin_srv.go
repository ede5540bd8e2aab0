package usecase

import (
	"context"
	"fmt"

	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AdminService interface {
	ListCardValidations(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CardValidationResponse], error)
}

type adminService struct {
	cards repository.CardValidationRepository
	log   *zap.Logger
}

func NewAdminService(cards repository.CardValidationRepository, log *zap.Logger) AdminService {
	return &adminService{
		cards: cards,
		log:   log.With(zap.String("service", "admin")),
	}
}

// ListCardValidations returns one page of recorded cards, newest first.
func (s *adminService) ListCardValidations(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CardValidationResponse], error) {
	records, err := s.cards.ListNewestFirst(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list card validations", zap.Error(err))
		return nil, fmt.Errorf("failed to list card validations: %w", err)
	}

	total, err := s.cards.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count card validations", zap.Error(err))
		return nil, fmt.Errorf("failed to count card validations: %w", err)
	}

	items := make([]response.CardValidationResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, response.CardValidationToResponse(rec))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}
