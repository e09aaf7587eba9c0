package repository

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/service-provider-api/internal/listing"
)

// ratingExpr — средняя оценка исполнителя. Одно и то же выражение попадает
// в SELECT (review_rating), в фильтр и в сортировку, поэтому показанный
// рейтинг совпадает с тем, что проверяет reviews_gt/reviews_lt, до бита.
const ratingExpr = "(SELECT COALESCE(AVG(reviews.rating), 0) FROM reviews" +
	" WHERE reviews.service_provider_id = service_providers.id)"

// ratingColumn выбирает ratingExpr в model.ServiceProvider.StoredRating.
const ratingColumn = ratingExpr + " AS review_rating"

const hasNoReviews = "NOT EXISTS (SELECT 1 FROM reviews" +
	" WHERE reviews.service_provider_id = service_providers.id)"

type condition struct {
	query string
	args  []any
}

// providerConditions — условия выборки исполнителей по фильтру.
// Навыки, окна доступности и рейтинг проверяются подзапросами, а не JOIN,
// поэтому исполнитель попадает в выборку не больше одного раза.
type providerConditions struct {
	where []condition
}

func buildProviderConditions(f listing.Filter) providerConditions {
	var c providerConditions

	if f.Name != nil {
		c.where = append(c.where, condition{"service_providers.name = ?", []any{*f.Name}})
	}
	if f.CostGT != nil {
		c.where = append(c.where, condition{"service_providers.cost_in_pence > ?", []any{*f.CostGT}})
	}
	if f.CostLT != nil {
		c.where = append(c.where, condition{"service_providers.cost_in_pence < ?", []any{*f.CostLT}})
	}

	if len(f.Skills) > 0 {
		c.where = append(c.where, condition{
			"service_providers.id IN (SELECT skills.service_provider_id FROM skills WHERE skills.skill IN ?)",
			[]any{f.Skills},
		})
	}

	// Каждое окно должно целиком лежать в каком-то одном диапазоне исполнителя;
	// разные окна могут покрываться разными диапазонами.
	for _, w := range f.Availability {
		c.where = append(c.where, condition{
			"EXISTS (SELECT 1 FROM availability" +
				" WHERE availability.service_provider_id = service_providers.id" +
				" AND availability.from_date <= ? AND availability.to_date >= ?)",
			[]any{datatypes.Date(w.From), datatypes.Date(w.To)},
		})
	}

	// Исполнители без отзывов проходят фильтр при любом диапазоне рейтинга.
	c.where = append(c.where, condition{
		"(" + hasNoReviews + " OR (" + ratingExpr + " >= ? AND " + ratingExpr + " <= ?))",
		[]any{f.ReviewsGT, f.ReviewsLT},
	})

	return c
}

// apply навешивает условия на запрос по service_providers.
func (c providerConditions) apply(q *gorm.DB) *gorm.DB {
	for _, w := range c.where {
		q = q.Where(w.query, w.args...)
	}
	return q
}
