package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/logging"
	"github.com/Leganyst/service-provider-api/internal/model"
	"github.com/Leganyst/service-provider-api/internal/repository"
	"github.com/Leganyst/service-provider-api/internal/utils"
)

func newTestService(t *testing.T) *ProviderService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	return NewProviderService(
		repository.NewGormProviderRepository(db),
		repository.NewGormReviewRepository(db),
		logging.Nop(),
	)
}

func mustRange(t *testing.T, from, to string) utils.DateRange {
	t.Helper()
	r, err := utils.ParseDateRange(from, to)
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	return r
}

func TestProviderService_CreateTrimsAndValidates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, model.ProviderInput{
		Name:         "  John Smith ",
		CostInPence:  1000,
		Skills:       []string{" plumbing", "electrical "},
		Availability: []utils.DateRange{mustRange(t, "2024-01-01", "2024-01-31")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "John Smith" || p.UserID != owner {
		t.Fatalf("unexpected provider %+v", p)
	}
	if skills := p.SkillNames(); skills[0] != "plumbing" || skills[1] != "electrical" {
		t.Fatalf("skills not trimmed: %v", skills)
	}

	invalid := []struct {
		in    model.ProviderInput
		field string
	}{
		{model.ProviderInput{Name: " ", CostInPence: 1}, "name"},
		{model.ProviderInput{Name: "X", CostInPence: -1}, "cost_in_pence"},
		{model.ProviderInput{Name: "X", Skills: []string{"ok", ""}}, "skills[1]"},
	}
	for _, tc := range invalid {
		_, err := svc.Create(ctx, owner, tc.in)
		var verr *listing.ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("expected ValidationError on %q, got %v", tc.field, err)
		}
	}
}

func TestProviderService_OwnershipAndReviews(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	p, err := svc.Create(ctx, owner, model.ProviderInput{Name: "Dean Greene", CostInPence: 2000, Skills: []string{"SEO"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, stranger, p.ID, model.ProviderInput{Name: "X", CostInPence: 1}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign update, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}

	// отзыв может оставить кто угодно
	if _, err := svc.AddReview(ctx, stranger, p.ID, 2); err != nil {
		t.Fatalf("add review: %v", err)
	}
	if _, err := svc.AddReview(ctx, stranger, p.ID, 5.5); err == nil {
		t.Fatalf("expected validation error for rating above 5")
	}
	if _, err := svc.AddReview(ctx, stranger, uuid.New(), 3); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for review on missing provider, got %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReviewRating() != 2 {
		t.Fatalf("expected rating 2, got %v", got.ReviewRating())
	}

	reviews, err := svc.ListReviews(ctx, p.ID, 1, 10)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews.Items) != 1 || reviews.Items[0].UserID != stranger {
		t.Fatalf("unexpected reviews %+v", reviews.Items)
	}

	if err := svc.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProviderService_Recommend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	for _, in := range []model.ProviderInput{
		{Name: "John Smith", CostInPence: 1000, Skills: []string{"plumbing", "electrical"}},
		{Name: "Dean Greene", CostInPence: 2000, Skills: []string{"IT Services", "SEO"}},
	} {
		if _, err := svc.Create(ctx, owner, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	r := listing.NewRecommendation()
	r.JobBudgetInPence = 5000
	r.ExpectedJobDurationInDays = 3

	page, err := svc.Recommend(ctx, r)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "John Smith" {
		t.Fatalf("expected only John Smith, got %d items", len(page.Items))
	}

	r.JobBudgetInPence = 0
	if _, err := svc.Recommend(ctx, r); err == nil {
		t.Fatalf("expected validation error for missing budget")
	}
}

type failingProviders struct {
	repository.ProviderRepository
}

func (failingProviders) Create(context.Context, *model.ServiceProvider) error {
	return fmt.Errorf("%w: %v", repository.ErrCreationFailed, errors.New("pq: connection refused at 10.0.0.5"))
}

func (failingProviders) List(context.Context, listing.Filter) (listing.Page[model.ServiceProvider], error) {
	return listing.Page[model.ServiceProvider]{}, errors.New("driver: bad connection")
}

func TestProviderService_HidesStorageDetails(t *testing.T) {
	svc := NewProviderService(failingProviders{}, nil, logging.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), model.ProviderInput{Name: "X", CostInPence: 1})
	if !errors.Is(err, repository.ErrCreationFailed) {
		t.Fatalf("expected ErrCreationFailed, got %v", err)
	}
	if strings.Contains(err.Error(), "10.0.0.5") {
		t.Fatalf("storage detail leaked: %v", err)
	}

	_, err = svc.List(ctx, listing.NewFilter())
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
