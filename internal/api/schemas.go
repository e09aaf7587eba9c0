// Package api описывает JSON-схемы запросов и ответов. Одни и те же схемы
// используются HTTP-обработчиками и gRPC-сервисом.
package api

import (
	"fmt"
	"time"

	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/model"
	"github.com/Leganyst/service-provider-api/internal/utils"
)

type Availability struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// ServiceProviderCreate — тело POST /service-provider и PUT /service-provider/{id}.
type ServiceProviderCreate struct {
	Name         string         `json:"name"`
	Skills       []string       `json:"skills"`
	CostInPence  *int64         `json:"cost_in_pence"`
	Availability []Availability `json:"availability"`
}

type ServiceProvider struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Skills       []string       `json:"skills"`
	CostInPence  int64          `json:"cost_in_pence"`
	Availability []Availability `json:"availability"`
	ReviewRating float64        `json:"review_rating"`
}

type ServiceProvidersList struct {
	ServiceProviders []ServiceProvider `json:"service_providers"`
	Page             int               `json:"page"`
	PageSize         int               `json:"page_size"`
	HasNext          bool              `json:"has_next"`
}

type ReviewCreate struct {
	Rating *float64 `json:"rating"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewsList struct {
	Reviews  []Review `json:"reviews"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	HasNext  bool     `json:"has_next"`
}

// FilterRequest — тело POST /service-providers. Незаданные поля получают
// значения по умолчанию listing.NewFilter.
type FilterRequest struct {
	Page         *int           `json:"page"`
	PageSize     *int           `json:"page_size"`
	Name         *string        `json:"name"`
	Skills       []string       `json:"skills"`
	CostGT       *float64       `json:"cost_gt"`
	CostLT       *float64       `json:"cost_lt"`
	ReviewsGT    *float64       `json:"reviews_gt"`
	ReviewsLT    *float64       `json:"reviews_lt"`
	Availability []Availability `json:"availability"`
}

// RecommendRequest — тело POST /service-providers/recommend.
type RecommendRequest struct {
	Page                      *int           `json:"page"`
	PageSize                  *int           `json:"page_size"`
	ExpectedJobDurationInDays *int           `json:"expected_job_duration_in_days"`
	JobBudgetInPence          *int64         `json:"job_budget_in_pence"`
	MinimumReviewRating       *float64       `json:"minimum_review_rating"`
	Skills                    []string       `json:"skills"`
	Availability              []Availability `json:"availability"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ToInput проверяет тело и переводит его в данные для создания/замены.
func (r ServiceProviderCreate) ToInput() (model.ProviderInput, error) {
	if r.CostInPence == nil {
		return model.ProviderInput{}, listing.Invalid("cost_in_pence", "is required")
	}
	ranges, err := ParseAvailability(r.Availability)
	if err != nil {
		return model.ProviderInput{}, err
	}

	in := model.ProviderInput{
		Name:         r.Name,
		CostInPence:  *r.CostInPence,
		Skills:       r.Skills,
		Availability: ranges,
	}
	return in, nil
}

func (r FilterRequest) ToFilter() (listing.Filter, error) {
	f := listing.NewFilter()

	if r.Page != nil {
		f.Page = *r.Page
	}
	if r.PageSize != nil {
		f.PageSize = *r.PageSize
	}
	if r.Name != nil {
		f.SetName(*r.Name)
	}
	if r.ReviewsGT != nil {
		f.ReviewsGT = *r.ReviewsGT
	}
	if r.ReviewsLT != nil {
		f.ReviewsLT = *r.ReviewsLT
	}
	f.Skills = r.Skills
	f.CostGT = r.CostGT
	f.CostLT = r.CostLT

	ranges, err := ParseAvailability(r.Availability)
	if err != nil {
		return listing.Filter{}, err
	}
	f.Availability = ranges

	if err := f.Validate(); err != nil {
		return listing.Filter{}, err
	}
	return f, nil
}

func (r RecommendRequest) ToRecommendation() (listing.Recommendation, error) {
	rec := listing.NewRecommendation()

	if r.Page != nil {
		rec.Page = *r.Page
	}
	if r.PageSize != nil {
		rec.PageSize = *r.PageSize
	}
	if r.ExpectedJobDurationInDays != nil {
		rec.ExpectedJobDurationInDays = *r.ExpectedJobDurationInDays
	}
	if r.JobBudgetInPence != nil {
		rec.JobBudgetInPence = *r.JobBudgetInPence
	}
	if r.MinimumReviewRating != nil {
		rec.MinimumReviewRating = *r.MinimumReviewRating
	}
	rec.Skills = r.Skills

	ranges, err := ParseAvailability(r.Availability)
	if err != nil {
		return listing.Recommendation{}, err
	}
	rec.Availability = ranges

	if err := rec.Validate(); err != nil {
		return listing.Recommendation{}, err
	}
	return rec, nil
}

// ParseAvailability разбирает окна вида {from_date, to_date}.
func ParseAvailability(in []Availability) ([]utils.DateRange, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]utils.DateRange, 0, len(in))
	for i, a := range in {
		r, err := utils.ParseDateRange(a.FromDate, a.ToDate)
		if err != nil {
			return nil, listing.Invalid(fmt.Sprintf("availability[%d]", i), "%v", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// ParseDatePairs разбирает окна из плоского списка дат query-параметра.
func ParseDatePairs(values []string) ([]utils.DateRange, error) {
	ranges, err := utils.PairDates(values)
	if err != nil {
		return nil, listing.Invalid("availability", "%v", err)
	}
	return ranges, nil
}

func NewServiceProvider(p *model.ServiceProvider) ServiceProvider {
	out := ServiceProvider{
		ID:           p.ID.String(),
		Name:         p.Name,
		Skills:       p.SkillNames(),
		CostInPence:  p.CostInPence,
		Availability: make([]Availability, 0, len(p.Availability)),
		ReviewRating: p.ReviewRating(),
	}
	for _, a := range p.Availability {
		r := a.Range()
		out.Availability = append(out.Availability, Availability{
			FromDate: r.From.Format(utils.DateLayout),
			ToDate:   r.To.Format(utils.DateLayout),
		})
	}
	return out
}

func NewServiceProvidersList(page listing.Page[model.ServiceProvider]) ServiceProvidersList {
	out := ServiceProvidersList{
		ServiceProviders: make([]ServiceProvider, 0, len(page.Items)),
		Page:             page.Page,
		PageSize:         page.PageSize,
		HasNext:          page.HasNext,
	}
	for i := range page.Items {
		out.ServiceProviders = append(out.ServiceProviders, NewServiceProvider(&page.Items[i]))
	}
	return out
}

func NewReview(r *model.Review) Review {
	return Review{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

func NewReviewsList(page listing.Page[model.Review]) ReviewsList {
	out := ReviewsList{
		Reviews:  make([]Review, 0, len(page.Items)),
		Page:     page.Page,
		PageSize: page.PageSize,
		HasNext:  page.HasNext,
	}
	for i := range page.Items {
		out.Reviews = append(out.Reviews, NewReview(&page.Items[i]))
	}
	return out
}
