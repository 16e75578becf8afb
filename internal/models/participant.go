package models

import (
	"gorm.io/gorm"
)

type ParticipantStatus string

// Status values are capitalized to match the participant status enum used by
// the mobile and web clients.
const (
	ParticipantStatusPending  ParticipantStatus = "Pending"
	ParticipantStatusApproved ParticipantStatus = "Approved"
	ParticipantStatusRejected ParticipantStatus = "Rejected"
)

// TripParticipant links a user to a trip with an approval status. A user may
// hold at most one row per trip; the composite unique index enforces that at
// the database level so a repeated join request fails with a duplicate-key
// error instead of creating a second row.
type TripParticipant struct {
	gorm.Model
	TripID uint              `json:"tripId" gorm:"not null;uniqueIndex:idx_trip_participants_trip_user"`
	UserID uint              `json:"userId" gorm:"not null;uniqueIndex:idx_trip_participants_trip_user"`
	Status ParticipantStatus `json:"status" gorm:"not null;default:'Pending'"`
	Trip   Trip              `json:"-" gorm:"foreignKey:TripID"`
	User   User              `json:"user" gorm:"foreignKey:UserID"`
}

func (TripParticipant) TableName() string {
	return "trip_participants"
}
