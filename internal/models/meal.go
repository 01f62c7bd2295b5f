package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is one logged meal attributed to a calendar day.
type Meal struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index:idx_meals_user_date" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date;not null;index:idx_meals_user_date" json:"date"`
	Calories    int       `gorm:"not null;default:0" json:"calories"`
	Protein     float64   `gorm:"not null;default:0" json:"protein"`
	Carbs       float64   `gorm:"not null;default:0" json:"carbs"`
	Fats        float64   `gorm:"not null;default:0" json:"fats"`
	Analysis    string    `gorm:"type:text" json:"analysis"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
