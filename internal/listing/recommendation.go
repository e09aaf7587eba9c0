package listing

import (
	"github.com/shopspring/decimal"

	"github.com/Leganyst/service-provider-api/internal/model"
	"github.com/Leganyst/service-provider-api/internal/utils"
)

const DefaultJobDurationInDays = 1

// Recommendation — запрос «подобрать исполнителя под работу».
type Recommendation struct {
	Page     int
	PageSize int

	ExpectedJobDurationInDays int
	JobBudgetInPence          int64
	MinimumReviewRating       float64

	Skills       []string
	Availability []utils.DateRange
}

// NewRecommendation возвращает запрос со значениями по умолчанию; бюджет
// обязателен и по умолчанию не задан.
func NewRecommendation() Recommendation {
	return Recommendation{
		Page:                      DefaultPage,
		PageSize:                  DefaultPageSize,
		ExpectedJobDurationInDays: DefaultJobDurationInDays,
		MinimumReviewRating:       model.MinRating,
	}
}

func (r Recommendation) Validate() error {
	if err := ValidatePaging(r.Page, r.PageSize); err != nil {
		return err
	}
	if r.ExpectedJobDurationInDays < 1 {
		return Invalid("expected_job_duration_in_days", "must be at least 1")
	}
	if r.JobBudgetInPence < 1 {
		return Invalid("job_budget_in_pence", "must be at least 1")
	}
	if err := validateRating("minimum_review_rating", r.MinimumReviewRating); err != nil {
		return err
	}
	return validateWindows(r.Availability)
}

// MaxCostPerDay — потолок дневной ставки: бюджет / длительность, без округления.
func (r Recommendation) MaxCostPerDay() decimal.Decimal {
	return decimal.NewFromInt(r.JobBudgetInPence).
		Div(decimal.NewFromInt(int64(r.ExpectedJobDurationInDays)))
}

// ToFilter переводит запрос в обычный фильтр списка. Дешевле и с меньшим
// рейтингом идут первыми, как и в List.
//
// reviews_gt может совпасть с reviews_lt (минимальный рейтинг 5):
// строгая проверка Filter.Validate здесь не применяется.
func (r Recommendation) ToFilter() (Filter, error) {
	if err := r.Validate(); err != nil {
		return Filter{}, err
	}

	maxCost := r.MaxCostPerDay().InexactFloat64()

	return Filter{
		Page:         r.Page,
		PageSize:     r.PageSize,
		Skills:       r.Skills,
		CostLT:       &maxCost,
		ReviewsGT:    r.MinimumReviewRating,
		ReviewsLT:    model.MaxRating,
		Availability: r.Availability,
	}, nil
}
