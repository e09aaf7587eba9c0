package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/model"
)

type ProviderRepository interface {
	// Страница исполнителей по фильтру: сначала дешевле, затем с меньшим рейтингом.
	List(ctx context.Context, f listing.Filter) (listing.Page[model.ServiceProvider], error)
	// Создать исполнителя вместе с навыками и окнами доступности.
	Create(ctx context.Context, p *model.ServiceProvider) error
	// Получить исполнителя; если owner задан, только принадлежащего ему.
	GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*model.ServiceProvider, error)
	// Полностью заменить имя, ставку, навыки и доступность. Отзывы не трогаются.
	Replace(ctx context.Context, owner uuid.UUID, p *model.ServiceProvider) (*model.ServiceProvider, error)
	// Удалить исполнителя со всеми дочерними записями.
	Delete(ctx context.Context, id, owner uuid.UUID) error
}

// Реализация на GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

func preloadChildren(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Skills").
		Preload("Availability", func(db *gorm.DB) *gorm.DB {
			return db.Order("availability.from_date ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at ASC")
		})
}

func (r *GormProviderRepository) List(ctx context.Context, f listing.Filter) (listing.Page[model.ServiceProvider], error) {
	var providers []model.ServiceProvider

	q := r.db.WithContext(ctx).
		Model(&model.ServiceProvider{}).
		Select("service_providers.*, " + ratingColumn)

	q = buildProviderConditions(f).apply(q)

	// id — детерминированный tie-break, чтобы страницы не пересекались.
	q = q.
		Order("service_providers.cost_in_pence ASC").
		Order(ratingExpr + " ASC").
		Order("service_providers.id ASC").
		Offset(f.Offset()).
		Limit(listing.FetchLimit(f.PageSize))

	if err := preloadChildren(q).Find(&providers).Error; err != nil {
		return listing.Page[model.ServiceProvider]{}, err
	}

	return listing.NewPage(providers, f.Page, f.PageSize), nil
}

func (r *GormProviderRepository) Create(ctx context.Context, p *model.ServiceProvider) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		return insertChildren(tx, p)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	return nil
}

func (r *GormProviderRepository) GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*model.ServiceProvider, error) {
	var p model.ServiceProvider

	q := preloadChildren(r.db.WithContext(ctx)).
		Select("service_providers.*, "+ratingColumn).
		Where("service_providers.id = ?", id)
	if owner != nil {
		q = q.Where("service_providers.user_id = ?", *owner)
	}

	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) Replace(ctx context.Context, owner uuid.UUID, p *model.ServiceProvider) (*model.ServiceProvider, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findOwned(tx, p.ID, owner)
		if err != nil {
			return err
		}

		update := map[string]any{
			"name":          p.Name,
			"cost_in_pence": p.CostInPence,
			"updated_at":    time.Now().UTC(),
		}
		if err := tx.Model(existing).Updates(update).Error; err != nil {
			return err
		}

		if err := tx.Where("service_provider_id = ?", p.ID).Delete(&model.Skill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_provider_id = ?", p.ID).Delete(&model.AvailabilityRange{}).Error; err != nil {
			return err
		}

		return insertChildren(tx, p)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	return r.GetByID(ctx, p.ID, &owner)
}

func (r *GormProviderRepository) Delete(ctx context.Context, id, owner uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findOwned(tx, id, owner)
		if err != nil {
			return err
		}
		// Дочерние строки удаляются явно; ON DELETE CASCADE страхует на уровне БД.
		return tx.Select(clause.Associations).Delete(existing).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// findOwned ищет исполнителя в транзакции с блокировкой строки.
func findOwned(tx *gorm.DB, id, owner uuid.UUID) (*model.ServiceProvider, error) {
	var p model.ServiceProvider

	q := tx.Where("id = ? AND user_id = ?", id, owner)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// insertChildren вставляет навыки и окна доступности p.
func insertChildren(tx *gorm.DB, p *model.ServiceProvider) error {
	for i := range p.Skills {
		p.Skills[i].ID = uuid.Nil
		p.Skills[i].ServiceProviderID = p.ID
	}
	for i := range p.Availability {
		p.Availability[i].ID = uuid.Nil
		p.Availability[i].ServiceProviderID = p.ID
	}

	if len(p.Skills) > 0 {
		if err := tx.Create(&p.Skills).Error; err != nil {
			return err
		}
	}
	if len(p.Availability) > 0 {
		if err := tx.Create(&p.Availability).Error; err != nil {
			return err
		}
	}
	return nil
}
