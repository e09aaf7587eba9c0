package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// skills — навык исполнителя; дубликаты допускаются.
type Skill struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Skill             string    `gorm:"type:varchar(255);not null;index"`
}

func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NewSkills строит строки навыков для исполнителя.
func NewSkills(providerID uuid.UUID, names []string) []Skill {
	skills := make([]Skill, 0, len(names))
	for _, n := range names {
		skills = append(skills, Skill{ServiceProviderID: providerID, Skill: n})
	}
	return skills
}
