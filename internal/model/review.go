package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// reviews — оценка исполнителя пользователем. Один пользователь может
// оставить несколько отзывов одному исполнителю.
type Review struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceProviderID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Автор отзыва.
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Rating float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AverageRating — среднее арифметическое оценок, 0 для пустого списка.
// Для записей из базы ReviewRating берёт значение, посчитанное SQL.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}
