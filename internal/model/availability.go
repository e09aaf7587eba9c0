package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/service-provider-api/internal/utils"
)

// availability — окно доступности исполнителя, закрытый интервал дат [FromDate, ToDate].
type AvailabilityRange struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceProviderID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Чистые даты без времени — datatypes.Date
	FromDate datatypes.Date `gorm:"type:date;not null;index"`
	ToDate   datatypes.Date `gorm:"type:date;not null;index"`
}

func (AvailabilityRange) TableName() string {
	return "availability"
}

func (a *AvailabilityRange) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Range возвращает окно как интервал дат.
func (a AvailabilityRange) Range() utils.DateRange {
	return utils.DateRange{
		From: utils.DateOnly(time.Time(a.FromDate)),
		To:   utils.DateOnly(time.Time(a.ToDate)),
	}
}

// NewAvailability строит строки доступности для исполнителя.
func NewAvailability(providerID uuid.UUID, ranges []utils.DateRange) []AvailabilityRange {
	rows := make([]AvailabilityRange, 0, len(ranges))
	for _, r := range ranges {
		rows = append(rows, AvailabilityRange{
			ServiceProviderID: providerID,
			FromDate:          datatypes.Date(r.From),
			ToDate:            datatypes.Date(r.To),
		})
	}
	return rows
}
