package repository

import (
	"github.com/finbook/finbook/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.FinancialEvent) error {
	return r.db.Create(event).Error
}

// FindByUserID returns the user's events newest-first, id being the
// ordering key.
func (r *EventRepository) FindByUserID(userID uint) ([]models.FinancialEvent, error) {
	var events []models.FinancialEvent
	err := r.db.
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}
