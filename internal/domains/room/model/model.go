package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldRoomNumber       = "room_number"
	FieldRoomType         = "room_type"
	FieldCustomRoomType   = "custom_room_type"
	FieldBedConfiguration = "bed_configuration"
	FieldFloorNumber      = "floor_number"
	FieldBasePrice        = "base_price"
	FieldMaxOccupancy     = "max_occupancy"
	FieldStatus           = "status"
)

type RoomType string

const (
	RoomTypeSingle     RoomType = "Single"
	RoomTypeDouble     RoomType = "Double"
	RoomTypeDeluxe     RoomType = "Deluxe"
	RoomTypeSuite      RoomType = "Suite"
	RoomTypeFamilyRoom RoomType = "Family Room"
	RoomTypeCustom     RoomType = "Custom"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeDeluxe, RoomTypeSuite, RoomTypeFamilyRoom, RoomTypeCustom:
		return true
	}

	return false
}

type BedConfiguration string

const (
	BedSingle BedConfiguration = "Single Bed"
	BedDouble BedConfiguration = "Double Bed"
	BedTwin   BedConfiguration = "Twin Beds"
	BedKing   BedConfiguration = "King Bed"
)

func (b BedConfiguration) Valid() bool {
	switch b {
	case BedSingle, BedDouble, BedTwin, BedKing:
		return true
	}

	return false
}

type Status string

const (
	StatusActive           Status = "Active"
	StatusUnderMaintenance Status = "Under Maintenance"
	StatusInactive         Status = "Inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusUnderMaintenance, StatusInactive:
		return true
	}

	return false
}

// Bookable reports whether new reservations may be taken for a room in this status.
func (s Status) Bookable() bool {
	return s == StatusActive
}

type Amenities struct {
	HasAC           bool `db:"has_ac"           json:"has_ac"`
	HasTV           bool `db:"has_tv"           json:"has_tv"`
	HasWifi         bool `db:"has_wifi"         json:"has_wifi"`
	HasBalcony      bool `db:"has_balcony"      json:"has_balcony"`
	HasRefrigerator bool `db:"has_refrigerator" json:"has_refrigerator"`
	HasMiniBar      bool `db:"has_mini_bar"     json:"has_mini_bar"`
	HasSafe         bool `db:"has_safe"         json:"has_safe"`
	HasBathtub      bool `db:"has_bathtub"      json:"has_bathtub"`
}

type Room struct {
	ID               string           `db:"id"`
	RoomNumber       string           `db:"room_number"`
	RoomType         RoomType         `db:"room_type"`
	CustomRoomType   *string          `db:"custom_room_type"`
	BedConfiguration BedConfiguration `db:"bed_configuration"`
	FloorNumber      int              `db:"floor_number"`
	BasePrice        decimal.Decimal  `db:"base_price"`
	MaxOccupancy     int              `db:"max_occupancy"`
	Status           Status           `db:"status"`
	Notes            *string          `db:"notes"`
	Amenities
	model.Metadata
}

// DisplayType is the custom label for Custom rooms and the enumerated type otherwise.
func (r Room) DisplayType() string {
	if r.RoomType == RoomTypeCustom && r.CustomRoomType != nil && *r.CustomRoomType != "" {
		return *r.CustomRoomType
	}

	return string(r.RoomType)
}

// StatusCount is one row of a GROUP BY over rooms.
type StatusCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}
