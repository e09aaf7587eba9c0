package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/service-provider-api/internal/api"
	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/repository"
)

// respondError переводит ошибку сервиса в HTTP-статус и тело {"error": ...}.
func respondError(c *gin.Context, err error) {
	var verr *listing.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: verr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: repository.ErrNotFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
}
