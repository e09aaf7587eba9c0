package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/service-provider-api/internal/utils"
)

// ServiceProvider — исполнитель, который предлагает работу за дневную ставку.
// Принадлежит пользователю UserID: только он может менять и удалять запись.
type ServiceProvider struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Владелец записи (заголовок user-id при создании).
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name string `gorm:"type:varchar(255);not null;index"`

	// Дневная ставка в пенсах, >= 0.
	CostInPence int64 `gorm:"not null;index;check:chk_service_providers_cost,cost_in_pence >= 0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Дочерние коллекции удаляются вместе с исполнителем.
	Skills       []Skill             `gorm:"foreignKey:ServiceProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Availability []AvailabilityRange `gorm:"foreignKey:ServiceProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Reviews      []Review            `gorm:"foreignKey:ServiceProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Средняя оценка, посчитанная базой при чтении (review_rating).
	// Только для чтения, в схеме колонки нет.
	StoredRating *float64 `gorm:"column:review_rating;->;-:migration"`
}

func (ServiceProvider) TableName() string {
	return "service_providers"
}

// BeforeCreate выдаёт идентификатор на стороне приложения, чтобы схема
// одинаково работала в Postgres и SQLite.
func (p *ServiceProvider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SkillNames возвращает навыки в порядке вставки.
func (p *ServiceProvider) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Skill)
	}
	return names
}

// ReviewRating — средняя оценка исполнителя, 0 если отзывов нет.
// Если запись прочитана из базы, это значение, по которому фильтрует List;
// иначе среднее считается по загруженным отзывам.
func (p *ServiceProvider) ReviewRating() float64 {
	if p.StoredRating != nil {
		return *p.StoredRating
	}
	return AverageRating(p.Reviews)
}

// AvailableFor сообщает, лежит ли каждое окно целиком в каком-то одном
// диапазоне доступности. Повторяет условие фильтра availability в SQL.
func (p *ServiceProvider) AvailableFor(windows ...utils.DateRange) bool {
	for _, w := range windows {
		covered := false
		for _, a := range p.Availability {
			if a.Range().Contains(w) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// ProviderInput — данные исполнителя, которые задаёт владелец при создании
// и полной замене.
type ProviderInput struct {
	Name         string
	CostInPence  int64
	Skills       []string
	Availability []utils.DateRange
}

// NewServiceProvider строит нового исполнителя владельца owner.
func (in ProviderInput) NewServiceProvider(id, owner uuid.UUID) *ServiceProvider {
	return &ServiceProvider{
		ID:           id,
		UserID:       owner,
		Name:         in.Name,
		CostInPence:  in.CostInPence,
		Skills:       NewSkills(id, in.Skills),
		Availability: NewAvailability(id, in.Availability),
	}
}
