package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/service-provider-api/internal/api"
	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/utils"
)

func queryInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, listing.Invalid(key, "must be an integer")
	}
	return &v, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, listing.Invalid(key, "must be an integer")
	}
	return &v, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, listing.Invalid(key, "must be a number")
	}
	return &v, nil
}

// queryAvailability читает окна из повторяющегося параметра availability:
// ?availability=2024-01-01&availability=2024-01-31 — одно окно.
func queryAvailability(c *gin.Context) ([]utils.DateRange, error) {
	values := c.QueryArray("availability")
	if len(values) == 0 {
		return nil, nil
	}
	return api.ParseDatePairs(values)
}

// filterFromQuery собирает фильтр из query-параметров GET /service-providers.
func filterFromQuery(c *gin.Context) (listing.Filter, error) {
	var (
		req api.FilterRequest
		err error
	)

	if req.Page, err = queryInt(c, "page"); err != nil {
		return listing.Filter{}, err
	}
	if req.PageSize, err = queryInt(c, "page_size"); err != nil {
		return listing.Filter{}, err
	}
	if req.CostGT, err = queryFloat(c, "cost_gt"); err != nil {
		return listing.Filter{}, err
	}
	if req.CostLT, err = queryFloat(c, "cost_lt"); err != nil {
		return listing.Filter{}, err
	}
	if req.ReviewsGT, err = queryFloat(c, "reviews_gt"); err != nil {
		return listing.Filter{}, err
	}
	if req.ReviewsLT, err = queryFloat(c, "reviews_lt"); err != nil {
		return listing.Filter{}, err
	}
	if name, ok := c.GetQuery("name"); ok {
		req.Name = &name
	}
	req.Skills = c.QueryArray("skills")

	windows, err := queryAvailability(c)
	if err != nil {
		return listing.Filter{}, err
	}

	f, err := req.ToFilter()
	if err != nil {
		return listing.Filter{}, err
	}
	f.Availability = windows
	return f, nil
}

// recommendationFromQuery собирает запрос из query-параметров GET /service-providers/recommend.
func recommendationFromQuery(c *gin.Context) (listing.Recommendation, error) {
	var (
		req api.RecommendRequest
		err error
	)

	if req.Page, err = queryInt(c, "page"); err != nil {
		return listing.Recommendation{}, err
	}
	if req.PageSize, err = queryInt(c, "page_size"); err != nil {
		return listing.Recommendation{}, err
	}
	if req.ExpectedJobDurationInDays, err = queryInt(c, "expected_job_duration_in_days"); err != nil {
		return listing.Recommendation{}, err
	}
	if req.JobBudgetInPence, err = queryInt64(c, "job_budget_in_pence"); err != nil {
		return listing.Recommendation{}, err
	}
	if req.MinimumReviewRating, err = queryFloat(c, "minimum_review_rating"); err != nil {
		return listing.Recommendation{}, err
	}
	req.Skills = c.QueryArray("skills")

	windows, err := queryAvailability(c)
	if err != nil {
		return listing.Recommendation{}, err
	}

	r, err := req.ToRecommendation()
	if err != nil {
		return listing.Recommendation{}, err
	}
	r.Availability = windows
	return r, nil
}
