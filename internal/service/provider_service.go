package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/logging"
	"github.com/Leganyst/service-provider-api/internal/model"
	"github.com/Leganyst/service-provider-api/internal/repository"
)

// ErrInternal — непредвиденная ошибка; подробности только в логе.
var ErrInternal = errors.New("internal error")

// ProviderService — операции каталога исполнителей поверх репозиториев.
//
// Возвращает *listing.ValidationError, repository.ErrNotFound, одну из
// repository.Err*Failed или ErrInternal. Текст ошибок хранилища наружу не
// уходит, он пишется в лог.
type ProviderService struct {
	providers repository.ProviderRepository
	reviews   repository.ReviewRepository
	log       *logging.Logger
}

func NewProviderService(
	providers repository.ProviderRepository,
	reviews repository.ReviewRepository,
	log *logging.Logger,
) *ProviderService {
	return &ProviderService{
		providers: providers,
		reviews:   reviews,
		log:       log.With("component", "provider_service"),
	}
}

func (s *ProviderService) Create(ctx context.Context, owner uuid.UUID, in model.ProviderInput) (*model.ServiceProvider, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	p := in.NewServiceProvider(uuid.New(), owner)
	if err := s.providers.Create(ctx, p); err != nil {
		return nil, s.fail("create", p.ID, err)
	}

	s.log.Info("service provider created", "id", p.ID, "owner", owner)
	return p, nil
}

func (s *ProviderService) Get(ctx context.Context, id uuid.UUID) (*model.ServiceProvider, error) {
	p, err := s.providers.GetByID(ctx, id, nil)
	if err != nil {
		return nil, s.fail("get", id, err)
	}
	return p, nil
}

// Update полностью заменяет данные исполнителя. Чужой исполнитель
// неотличим от отсутствующего.
func (s *ProviderService) Update(ctx context.Context, owner, id uuid.UUID, in model.ProviderInput) (*model.ServiceProvider, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	p, err := s.providers.Replace(ctx, owner, in.NewServiceProvider(id, owner))
	if err != nil {
		return nil, s.fail("update", id, err)
	}

	s.log.Info("service provider replaced", "id", id, "owner", owner)
	return p, nil
}

func (s *ProviderService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.providers.Delete(ctx, id, owner); err != nil {
		return s.fail("delete", id, err)
	}

	s.log.Info("service provider deleted", "id", id, "owner", owner)
	return nil
}

func (s *ProviderService) AddReview(ctx context.Context, author, providerID uuid.UUID, rating float64) (*model.Review, error) {
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, listing.Invalid("rating", "must be between %g and %g", model.MinRating, model.MaxRating)
	}

	review := &model.Review{
		ServiceProviderID: providerID,
		UserID:            author,
		Rating:            rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, s.fail("add review", providerID, err)
	}
	return review, nil
}

func (s *ProviderService) ListReviews(ctx context.Context, providerID uuid.UUID, page, pageSize int) (listing.Page[model.Review], error) {
	if err := listing.ValidatePaging(page, pageSize); err != nil {
		return listing.Page[model.Review]{}, err
	}

	reviews, err := s.reviews.ListByProvider(ctx, providerID, page, pageSize)
	if err != nil {
		return listing.Page[model.Review]{}, s.fail("list reviews", providerID, err)
	}
	return reviews, nil
}

func (s *ProviderService) List(ctx context.Context, f listing.Filter) (listing.Page[model.ServiceProvider], error) {
	if err := f.Validate(); err != nil {
		return listing.Page[model.ServiceProvider]{}, err
	}
	return s.list(ctx, f)
}

// Recommend подбирает исполнителей под бюджет и длительность работы.
func (s *ProviderService) Recommend(ctx context.Context, r listing.Recommendation) (listing.Page[model.ServiceProvider], error) {
	f, err := r.ToFilter()
	if err != nil {
		return listing.Page[model.ServiceProvider]{}, err
	}

	s.log.Debug("recommendation translated",
		"max_cost_per_day", r.MaxCostPerDay().StringFixed(2),
		"min_rating", r.MinimumReviewRating,
	)
	return s.list(ctx, f)
}

func (s *ProviderService) list(ctx context.Context, f listing.Filter) (listing.Page[model.ServiceProvider], error) {
	page, err := s.providers.List(ctx, f)
	if err != nil {
		return listing.Page[model.ServiceProvider]{}, s.fail("list", uuid.Nil, err)
	}
	return page, nil
}

// fail пишет ошибку хранилища в лог и отдаёт наружу только её категорию.
func (s *ProviderService) fail(op string, id uuid.UUID, err error) error {
	var verr *listing.ValidationError
	switch {
	case errors.As(err, &verr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return repository.ErrNotFound
	}

	fields := []any{"op", op, "err", err}
	if id != uuid.Nil {
		fields = append(fields, "id", id)
	}
	s.log.Error("storage operation failed", fields...)

	for _, public := range []error{
		repository.ErrCreationFailed,
		repository.ErrUpdateFailed,
		repository.ErrDeleteFailed,
		repository.ErrReviewCreationFailed,
	} {
		if errors.Is(err, public) {
			return public
		}
	}
	return ErrInternal
}

// normalizeInput проверяет данные исполнителя и убирает лишние пробелы.
func normalizeInput(in model.ProviderInput) (model.ProviderInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, listing.Invalid("name", "must not be empty")
	}
	if in.CostInPence < 0 {
		return in, listing.Invalid("cost_in_pence", "must not be negative")
	}

	skills := make([]string, 0, len(in.Skills))
	for i, skill := range in.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return in, listing.Invalid(fmt.Sprintf("skills[%d]", i), "must not be empty")
		}
		skills = append(skills, skill)
	}
	in.Skills = skills

	for i, r := range in.Availability {
		if r.From.IsZero() || r.To.IsZero() || r.From.After(r.To) {
			return in, listing.Invalid(fmt.Sprintf("availability[%d]", i), "from_date must not be after to_date")
		}
	}
	return in, nil
}
