package models

import (
	"time"

	"gorm.io/gorm"
)

type VehicleType string

const (
	VehicleBus       VehicleType = "Bus"
	VehicleCar       VehicleType = "Car"
	VehicleBike      VehicleType = "Bike"
	VehicleTrain     VehicleType = "Train"
	VehicleAeroplane VehicleType = "Aeroplane"
)

type FlexibilityType string

const (
	FlexibilityStrict   FlexibilityType = "Strict"
	FlexibilityFlexible FlexibilityType = "Flexible"
)

type TravelStyleType string

const (
	TravelStyleBudget      TravelStyleType = "Budget"
	TravelStyleLuxury      TravelStyleType = "Luxury"
	TravelStyleBackpacking TravelStyleType = "Backpacking"
)

type PurposeType string

const (
	PurposeExplore   PurposeType = "Explore"
	PurposeWork      PurposeType = "Work"
	PurposeAdventure PurposeType = "Adventure"
)

type VisibilityType string

const (
	VisibilityPublic  VisibilityType = "Public"
	VisibilityLimited VisibilityType = "Limited"
)

type Trip struct {
	gorm.Model
	CreatorID     uint            `json:"creatorId" gorm:"not null;index"`
	Creator       User            `json:"creator"`
	StartLocation string          `json:"startLocation" gorm:"column:start_location;not null"`
	EndLocation   string          `json:"endLocation" gorm:"column:end_location;not null"`
	StartTime     time.Time       `json:"startTime" gorm:"column:start_time;not null"`
	EndTime       time.Time       `json:"endTime" gorm:"column:end_time;not null"`
	Vehicle       VehicleType     `json:"vehicle" gorm:"not null"`
	Flexibility   FlexibilityType `json:"flexibility" gorm:"not null"`
	TravelStyle   TravelStyleType `json:"travelStyle" gorm:"column:travel_style;not null"`
	Purpose       PurposeType     `json:"purpose" gorm:"not null"`
	Visibility    VisibilityType  `json:"visibility" gorm:"not null;default:'Public'"`
	MaxPeople     int             `json:"maxPeople" gorm:"column:max_people;not null"`
	SafetyRules   string          `json:"safetyRules" gorm:"column:safety_rules"`
	Stops         []TripStop      `json:"stops,omitempty" gorm:"foreignKey:TripID"`
}

func (Trip) TableName() string {
	return "trips"
}

// TripStop is one named waypoint on a trip. Stops are written once at trip
// creation; stop_order is supplied by the creator and only used for display.
type TripStop struct {
	gorm.Model
	TripID    uint   `json:"tripId" gorm:"not null;index"`
	StopName  string `json:"stopName" gorm:"column:stop_name;not null"`
	StopOrder int    `json:"stopOrder" gorm:"column:stop_order;not null"`
}

func (TripStop) TableName() string {
	return "trip_stops"
}
