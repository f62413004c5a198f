package models

import (
	"gorm.io/gorm"
)

const (
	EventTypeIncome  = "INCOME"
	EventTypeOutcome = "OUTCOME"
)

type FinancialEvent struct {
	gorm.Model
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Value  int64  `gorm:"not null" json:"value"`
	Type   string `gorm:"not null;size:16" json:"type"`
}

// ValidEventType reports whether t is one of the two supported event types.
func ValidEventType(t string) bool {
	return t == EventTypeIncome || t == EventTypeOutcome
}
