package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/repository"
)

// DefaultHistoryLimit caps how many saved records a history read returns
// when the client doesn't ask for a specific limit.
const DefaultHistoryLimit = 50

// HistoryService wraps the append-only history sink.
type HistoryService struct {
	sink   repository.HistoryRepository
	logger *slog.Logger
}

func NewHistoryService(sink repository.HistoryRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{sink: sink, logger: logger}
}

// Save appends one weather record to the sink.
func (s *HistoryService) Save(ctx context.Context, rec model.HistoryRecord) error {
	if err := s.sink.Append(ctx, rec); err != nil {
		return fmt.Errorf("service/history: saving record: %w", err)
	}
	s.logger.Info("weather record saved", slog.String("city", rec.City))
	return nil
}

// List returns the most recent saved records, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := s.sink.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service/history: listing records: %w", err)
	}
	return records, nil
}
