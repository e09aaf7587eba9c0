package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/service-provider-api/internal/api"
	"github.com/Leganyst/service-provider-api/internal/caller"
	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/model"
)

// ProviderService — операции каталога, которые нужны HTTP-обработчикам.
type ProviderService interface {
	Create(ctx context.Context, owner uuid.UUID, in model.ProviderInput) (*model.ServiceProvider, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ServiceProvider, error)
	Update(ctx context.Context, owner, id uuid.UUID, in model.ProviderInput) (*model.ServiceProvider, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	AddReview(ctx context.Context, author, providerID uuid.UUID, rating float64) (*model.Review, error)
	ListReviews(ctx context.Context, providerID uuid.UUID, page, pageSize int) (listing.Page[model.Review], error)
	List(ctx context.Context, f listing.Filter) (listing.Page[model.ServiceProvider], error)
	Recommend(ctx context.Context, r listing.Recommendation) (listing.Page[model.ServiceProvider], error)
}

type ProviderHandler struct {
	svc ProviderService
}

func NewProviderHandler(svc ProviderService) *ProviderHandler {
	return &ProviderHandler{svc: svc}
}

// POST /v1_0/service-provider
func (h *ProviderHandler) Create(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}

	var body api.ServiceProviderCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, err := body.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.NewServiceProvider(p))
}

// GET /v1_0/service-provider/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := providerID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.NewServiceProvider(p))
}

// PUT /v1_0/service-provider/:id — полная замена, только владелец.
func (h *ProviderHandler) Update(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := providerID(c)
	if !ok {
		return
	}

	var body api.ServiceProviderCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, err := body.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), owner, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.NewServiceProvider(p))
}

// DELETE /v1_0/service-provider/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := providerID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// POST /v1_0/service-provider/:id/review
func (h *ProviderHandler) AddReview(c *gin.Context) {
	author, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := providerID(c)
	if !ok {
		return
	}

	var body api.ReviewCreate
	if err := c.ShouldBindJSON(&body); err != nil || body.Rating == nil {
		badRequest(c, "rating is required")
		return
	}

	review, err := h.svc.AddReview(c.Request.Context(), author, id, *body.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.NewReview(review))
}

// GET /v1_0/service-provider/:id/reviews
func (h *ProviderHandler) ListReviews(c *gin.Context) {
	id, ok := providerID(c)
	if !ok {
		return
	}

	page, err := queryInt(c, "page")
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		respondError(c, err)
		return
	}

	p, size := listing.DefaultPage, listing.DefaultPageSize
	if page != nil {
		p = *page
	}
	if pageSize != nil {
		size = *pageSize
	}

	reviews, err := h.svc.ListReviews(c.Request.Context(), id, p, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.NewReviewsList(reviews))
}

// GET /v1_0/service-providers
func (h *ProviderHandler) List(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	h.list(c, f)
}

// POST /v1_0/service-providers
func (h *ProviderHandler) Filter(c *gin.Context) {
	var body api.FilterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	f, err := body.ToFilter()
	if err != nil {
		respondError(c, err)
		return
	}
	h.list(c, f)
}

// GET /v1_0/service-providers/recommend
func (h *ProviderHandler) RecommendQuery(c *gin.Context) {
	r, err := recommendationFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	h.recommend(c, r)
}

// POST /v1_0/service-providers/recommend
func (h *ProviderHandler) Recommend(c *gin.Context) {
	var body api.RecommendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	r, err := body.ToRecommendation()
	if err != nil {
		respondError(c, err)
		return
	}
	h.recommend(c, r)
}

func (h *ProviderHandler) list(c *gin.Context, f listing.Filter) {
	page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewServiceProvidersList(page))
}

func (h *ProviderHandler) recommend(c *gin.Context, r listing.Recommendation) {
	page, err := h.svc.Recommend(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewServiceProvidersList(page))
}

// callerID достаёт вызывающего, положенного middleware.RequireCaller.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := caller.FromContext(c.Request.Context())
	if err != nil {
		badRequest(c, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func providerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid service provider id")
		return uuid.Nil, false
	}
	return id, true
}
