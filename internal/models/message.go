package models

import (
	"gorm.io/gorm"
)

// TripMessage is a single chat message in a trip's group chat. Messages are
// immutable and are never deleted when a participant is removed.
type TripMessage struct {
	gorm.Model
	TripID  uint   `json:"tripId" gorm:"not null;index"`
	UserID  uint   `json:"userId" gorm:"not null"`
	Content string `json:"content" gorm:"not null"`
	User    User   `json:"user" gorm:"foreignKey:UserID"`
}

func (TripMessage) TableName() string {
	return "trip_messages"
}
