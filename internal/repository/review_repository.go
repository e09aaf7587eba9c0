package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/model"
)

type ReviewRepository interface {
	// Добавить отзыв. Оставить отзыв может любой пользователь, не только владелец.
	Create(ctx context.Context, review *model.Review) error
	// Отзывы исполнителя, новые первыми.
	ListByProvider(ctx context.Context, providerID uuid.UUID, page, pageSize int) (listing.Page[model.Review], error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	db := r.db.WithContext(ctx)

	if err := ensureProviderExists(db, review.ServiceProviderID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrReviewCreationFailed, err)
	}

	if err := db.Create(review).Error; err != nil {
		// исполнителя удалили между проверкой и вставкой
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrReviewCreationFailed, err)
	}
	return nil
}

func (r *GormReviewRepository) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
	page, pageSize int,
) (listing.Page[model.Review], error) {
	db := r.db.WithContext(ctx)

	if err := ensureProviderExists(db, providerID); err != nil {
		return listing.Page[model.Review]{}, err
	}

	var reviews []model.Review
	err := db.
		Where("service_provider_id = ?", providerID).
		Order("created_at DESC").
		Order("id ASC").
		Offset(listing.Offset(page, pageSize)).
		Limit(listing.FetchLimit(pageSize)).
		Find(&reviews).Error
	if err != nil {
		return listing.Page[model.Review]{}, err
	}

	return listing.NewPage(reviews, page, pageSize), nil
}

func ensureProviderExists(db *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := db.Model(&model.ServiceProvider{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
