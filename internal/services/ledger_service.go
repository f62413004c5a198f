package services

import (
	"errors"

	"github.com/finbook/finbook/internal/models"
	"github.com/finbook/finbook/internal/repository"
)

var (
	ErrNegativeValue    = errors.New("value must be non-negative")
	ErrInvalidEventType = errors.New("invalid event type")
)

type LedgerService struct {
	eventRepo *repository.EventRepository
}

func NewLedgerService(eventRepo *repository.EventRepository) *LedgerService {
	return &LedgerService{eventRepo: eventRepo}
}

func (s *LedgerService) Record(userID uint, value int64, eventType string) error {
	if value < 0 {
		return ErrNegativeValue
	}
	if !models.ValidEventType(eventType) {
		return ErrInvalidEventType
	}

	event := &models.FinancialEvent{
		UserID: userID,
		Value:  value,
		Type:   eventType,
	}

	return s.eventRepo.Create(event)
}

// Events returns the user's ledger newest-first.
func (s *LedgerService) Events(userID uint) ([]models.FinancialEvent, error) {
	return s.eventRepo.FindByUserID(userID)
}

// Sum folds a sequence of events into a signed total, adding INCOME and
// subtracting OUTCOME. Addition commutes, so delivery order does not
// affect the result.
func Sum(events []models.FinancialEvent) int64 {
	var total int64
	for _, event := range events {
		if event.Type == models.EventTypeIncome {
			total += event.Value
		} else {
			total -= event.Value
		}
	}
	return total
}

func (s *LedgerService) Balance(userID uint) (int64, error) {
	events, err := s.eventRepo.FindByUserID(userID)
	if err != nil {
		return 0, err
	}
	return Sum(events), nil
}
