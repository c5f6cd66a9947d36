package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/abgdnv/gocatalog/internal/product/validation"
)

var _ service.ProductService = (*PublishingService)(nil)

// PublishingService publishes an event after every successful write of the wrapped service.
// A failed publish is logged and does not change the result of the write.
type PublishingService struct {
	next      service.ProductService
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewPublishingService(next service.ProductService, publisher Publisher, logger *slog.Logger) *PublishingService {
	return &PublishingService{
		next:      next,
		publisher: publisher,
		logger:    logger.With("component", "events"),
		now:       time.Now,
	}
}

func (s *PublishingService) Create(ctx context.Context, candidate validation.Candidate) (*service.ProductDto, error) {
	created, err := s.next.Create(ctx, candidate)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ProductCreated{Product: *created, OccurredAt: s.now().UTC()})
	return created, nil
}

func (s *PublishingService) Get(ctx context.Context, id int64) (*service.ProductDto, error) {
	return s.next.Get(ctx, id)
}

func (s *PublishingService) ListAll(ctx context.Context) ([]service.ProductDto, error) {
	return s.next.ListAll(ctx)
}

func (s *PublishingService) Update(ctx context.Context, id int64, candidate validation.Candidate) (*service.ProductDto, error) {
	updated, err := s.next.Update(ctx, id, candidate)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ProductUpdated{Product: *updated, OccurredAt: s.now().UTC()})
	return updated, nil
}

func (s *PublishingService) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, ProductDeleted{ProductID: id, OccurredAt: s.now().UTC()})
	return nil
}

func (s *PublishingService) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}
