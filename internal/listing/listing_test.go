package listing

import (
	"errors"
	"testing"
	"time"

	"github.com/Leganyst/service-provider-api/internal/utils"
)

func TestNewPage_TrimsExtraRow(t *testing.T) {
	rows := []int{1, 2, 3}

	p := NewPage(rows, 1, 2)
	if len(p.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(p.Items))
	}
	if !p.HasNext {
		t.Fatalf("expected HasNext for %d rows with page size 2", len(rows))
	}
	if p.HasPrev {
		t.Fatalf("first page must not have HasPrev")
	}

	// без лишней строки следующей страницы нет
	p = NewPage(rows[:2], 1, 2)
	if len(p.Items) != 2 || p.HasNext {
		t.Fatalf("expected full last page without HasNext, got %d items, HasNext=%v", len(p.Items), p.HasNext)
	}
}

func TestNewPage_Empty(t *testing.T) {
	p := NewPage[int](nil, 3, 10)
	if p.Items == nil || len(p.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", p.Items)
	}
	if p.HasNext {
		t.Fatalf("empty page must not have HasNext")
	}
	if !p.HasPrev {
		t.Fatalf("page 3 must have HasPrev")
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		page, size, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 1, 2},
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := Offset(tc.page, tc.size); got != tc.want {
			t.Fatalf("Offset(%d, %d) = %d, want %d", tc.page, tc.size, got, tc.want)
		}
	}
	if FetchLimit(10) != 11 {
		t.Fatalf("FetchLimit(10) = %d, want 11", FetchLimit(10))
	}
}

func ptr(v float64) *float64 { return &v }

func TestFilterValidate(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(f *Filter)
		field  string
	}{
		{"defaults", func(f *Filter) {}, ""},
		{"page zero", func(f *Filter) { f.Page = 0 }, "page"},
		{"page size zero", func(f *Filter) { f.PageSize = 0 }, "page_size"},
		{"page size at max", func(f *Filter) { f.PageSize = MaxPageSize }, ""},
		{"page size above max", func(f *Filter) { f.PageSize = MaxPageSize + 1 }, "page_size"},
		{"reviews_gt negative", func(f *Filter) { f.ReviewsGT = -1 }, "reviews_gt"},
		{"reviews_lt above five", func(f *Filter) { f.ReviewsLT = 5.5 }, "reviews_lt"},
		{"reviews equal", func(f *Filter) { f.ReviewsGT, f.ReviewsLT = 3, 3 }, "reviews_gt"},
		{"cost_gt negative", func(f *Filter) { f.CostGT = ptr(-1) }, "cost_gt"},
		{"cost inverted", func(f *Filter) { f.CostGT, f.CostLT = ptr(2000), ptr(1000) }, "cost_gt"},
		{"cost ok", func(f *Filter) { f.CostGT, f.CostLT = ptr(1000), ptr(2000) }, ""},
		{"one day window", func(f *Filter) {
			f.Availability = []utils.DateRange{{From: day, To: day}}
		}, ""},
		{"reversed window", func(f *Filter) {
			f.Availability = []utils.DateRange{{From: day, To: day.AddDate(0, 0, -1)}}
		}, "availability[0]"},
	}

	for _, tc := range cases {
		f := NewFilter()
		tc.mutate(&f)

		err := f.Validate()
		if tc.field == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			continue
		}

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}
}

func TestFilterSetName(t *testing.T) {
	f := NewFilter()
	f.SetName(" John Smith")
	if f.Name == nil || *f.Name != " John Smith" {
		t.Fatalf("expected name kept as given, got %v", f.Name)
	}
	f.SetName("")
	if f.Name != nil {
		t.Fatalf("empty name must clear the filter")
	}
}

func TestRecommendation_MaxCostPerDay(t *testing.T) {
	r := NewRecommendation()
	r.JobBudgetInPence = 5000
	r.ExpectedJobDurationInDays = 3

	if got := r.MaxCostPerDay().StringFixed(2); got != "1666.67" {
		t.Fatalf("MaxCostPerDay() = %s, want 1666.67", got)
	}

	f, err := r.ToFilter()
	if err != nil {
		t.Fatalf("ToFilter: %v", err)
	}
	if f.CostLT == nil {
		t.Fatalf("expected cost_lt to be set")
	}
	if *f.CostLT <= 1666 || *f.CostLT >= 1667 {
		t.Fatalf("cost_lt = %v, want 1666.66..", *f.CostLT)
	}
	if f.CostGT != nil || f.Name != nil {
		t.Fatalf("recommendation must not set cost_gt or name")
	}
	if f.ReviewsGT != 0 || f.ReviewsLT != 5 {
		t.Fatalf("unexpected rating range [%v, %v]", f.ReviewsGT, f.ReviewsLT)
	}
}

func TestRecommendation_ToFilterCarriesCriteria(t *testing.T) {
	window, err := utils.NewDateRange(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("NewDateRange: %v", err)
	}

	r := NewRecommendation()
	r.JobBudgetInPence = 1000
	r.MinimumReviewRating = 5
	r.Skills = []string{"plumbing"}
	r.Availability = []utils.DateRange{window}
	r.Page, r.PageSize = 2, 5

	f, err := r.ToFilter()
	if err != nil {
		t.Fatalf("ToFilter with minimum rating 5: %v", err)
	}
	if f.ReviewsGT != 5 || f.ReviewsLT != 5 {
		t.Fatalf("unexpected rating range [%v, %v]", f.ReviewsGT, f.ReviewsLT)
	}
	if len(f.Skills) != 1 || f.Skills[0] != "plumbing" {
		t.Fatalf("skills not carried: %v", f.Skills)
	}
	if len(f.Availability) != 1 || f.Availability[0] != window {
		t.Fatalf("availability not carried: %v", f.Availability)
	}
	if f.Page != 2 || f.PageSize != 5 {
		t.Fatalf("paging not carried: %d/%d", f.Page, f.PageSize)
	}
}

func TestRecommendationValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Recommendation)
		field  string
	}{
		{"missing budget", func(r *Recommendation) {}, "job_budget_in_pence"},
		{"zero duration", func(r *Recommendation) {
			r.JobBudgetInPence = 100
			r.ExpectedJobDurationInDays = 0
		}, "expected_job_duration_in_days"},
		{"rating above five", func(r *Recommendation) {
			r.JobBudgetInPence = 100
			r.MinimumReviewRating = 6
		}, "minimum_review_rating"},
	}

	for _, tc := range cases {
		r := NewRecommendation()
		tc.mutate(&r)

		var verr *ValidationError
		if err := r.Validate(); !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("%s: expected ValidationError on %q, got %v", tc.name, tc.field, err)
		}
	}
}
