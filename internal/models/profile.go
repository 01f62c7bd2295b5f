package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds per-user settings. A nil or zero TargetCalories means no target.
type Profile struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	TargetCalories *int      `json:"target_calories"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Target returns the calorie target, or nil when none is configured
func (p *Profile) Target() *int {
	if p == nil || p.TargetCalories == nil || *p.TargetCalories == 0 {
		return nil
	}
	t := *p.TargetCalories
	return &t
}
