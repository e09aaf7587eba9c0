package listing

import (
	"fmt"

	"github.com/Leganyst/service-provider-api/internal/model"
	"github.com/Leganyst/service-provider-api/internal/utils"
)

// ValidationError — некорректный или выходящий за допустимые границы параметр.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid строит ValidationError для поля field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Filter — параметры поиска исполнителей.
//
// Границы стоимости строгие: cost_gt < cost_in_pence < cost_lt.
// Границы рейтинга включительные и применяются всегда.
// Skills объединяются по ИЛИ, окна Availability — по И.
// Name сравнивается на точное равенство, без обрезки пробелов.
type Filter struct {
	Page     int
	PageSize int

	Name   *string
	Skills []string

	CostGT *float64
	CostLT *float64

	ReviewsGT float64
	ReviewsLT float64

	Availability []utils.DateRange
}

// NewFilter возвращает фильтр со значениями по умолчанию.
func NewFilter() Filter {
	return Filter{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		ReviewsGT: model.MinRating,
		ReviewsLT: model.MaxRating,
	}
}

// SetName задаёт фильтр по имени как есть; пустая строка фильтр снимает.
func (f *Filter) SetName(name string) {
	if name == "" {
		f.Name = nil
		return
	}
	f.Name = &name
}

// Offset — смещение первой строки страницы.
func (f Filter) Offset() int {
	return Offset(f.Page, f.PageSize)
}

func (f Filter) Validate() error {
	if err := ValidatePaging(f.Page, f.PageSize); err != nil {
		return err
	}
	if err := validateRating("reviews_gt", f.ReviewsGT); err != nil {
		return err
	}
	if err := validateRating("reviews_lt", f.ReviewsLT); err != nil {
		return err
	}
	if f.ReviewsGT >= f.ReviewsLT {
		return Invalid("reviews_gt", "must be less than reviews_lt (%g >= %g)", f.ReviewsGT, f.ReviewsLT)
	}
	if f.CostGT != nil && *f.CostGT < 0 {
		return Invalid("cost_gt", "must not be negative")
	}
	if f.CostLT != nil && *f.CostLT < 0 {
		return Invalid("cost_lt", "must not be negative")
	}
	if f.CostGT != nil && f.CostLT != nil && *f.CostGT >= *f.CostLT {
		return Invalid("cost_gt", "must be less than cost_lt (%g >= %g)", *f.CostGT, *f.CostLT)
	}
	return validateWindows(f.Availability)
}

// ValidatePaging проверяет номер и размер страницы; page_size не больше MaxPageSize.
func ValidatePaging(page, pageSize int) error {
	if page < 1 {
		return Invalid("page", "must be at least 1")
	}
	if pageSize < 1 {
		return Invalid("page_size", "must be at least 1")
	}
	if pageSize > MaxPageSize {
		return Invalid("page_size", "must not exceed %d", MaxPageSize)
	}
	return nil
}

func validateRating(field string, v float64) error {
	if v < model.MinRating || v > model.MaxRating {
		return Invalid(field, "must be between %g and %g", model.MinRating, model.MaxRating)
	}
	return nil
}

func validateWindows(windows []utils.DateRange) error {
	for i, w := range windows {
		if w.From.IsZero() || w.To.IsZero() || w.From.After(w.To) {
			return Invalid(fmt.Sprintf("availability[%d]", i), "from_date must not be after to_date")
		}
	}
	return nil
}
