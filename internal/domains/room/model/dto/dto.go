package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/money"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultMaxOccupancy = 2

type CreateRoomRequest struct {
	RoomNumber       string                 `json:"room_number"       validate:"required,max=20"`
	RoomType         model.RoomType         `json:"room_type"         validate:"required,enum"`
	CustomRoomType   *string                `json:"custom_room_type"  validate:"required_if=RoomType Custom,omitempty,max=100"`
	BedConfiguration model.BedConfiguration `json:"bed_configuration" validate:"required,enum"`
	FloorNumber      int                    `json:"floor_number"      validate:"gte=0"`
	BasePrice        decimal.Decimal        `json:"base_price"        validate:"gte=0"`
	MaxOccupancy     int                    `json:"max_occupancy"     validate:"omitempty,min=1,max=10"`
	Status           model.Status           `json:"status"            validate:"omitempty,enum"`
	Notes            *string                `json:"notes"`
	model.Amenities
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusActive
	}

	maxOccupancy := c.MaxOccupancy
	if maxOccupancy == 0 {
		maxOccupancy = defaultMaxOccupancy
	}

	now := timezone.Now()

	return model.Room{
		ID:               uuid.NewString(),
		RoomNumber:       c.RoomNumber,
		RoomType:         c.RoomType,
		CustomRoomType:   c.CustomRoomType,
		BedConfiguration: c.BedConfiguration,
		FloorNumber:      c.FloorNumber,
		BasePrice:        money.Round(c.BasePrice),
		MaxOccupancy:     maxOccupancy,
		Status:           status,
		Notes:            c.Notes,
		Amenities:        c.Amenities,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest carries the fields of a partial update. Nil fields are left untouched.
type UpdateRoomRequest struct {
	RoomNumber       *string                 `db:"room_number"       json:"room_number"       validate:"omitempty,min=1,max=20"`
	RoomType         *model.RoomType         `db:"room_type"         json:"room_type"         validate:"omitempty,enum"`
	CustomRoomType   *string                 `db:"custom_room_type"  json:"custom_room_type"  validate:"omitempty,max=100"`
	BedConfiguration *model.BedConfiguration `db:"bed_configuration" json:"bed_configuration" validate:"omitempty,enum"`
	FloorNumber      *int                    `db:"floor_number"      json:"floor_number"      validate:"omitempty,gte=0"`
	BasePrice        *decimal.Decimal        `db:"base_price"        json:"base_price"        validate:"omitempty,gte=0"`
	MaxOccupancy     *int                    `db:"max_occupancy"     json:"max_occupancy"     validate:"omitempty,min=1,max=10"`
	Status           *model.Status           `db:"status"            json:"status"            validate:"omitempty,enum"`
	Notes            *string                 `db:"notes"             json:"notes"`
	HasAC            *bool                   `db:"has_ac"            json:"has_ac"`
	HasTV            *bool                   `db:"has_tv"            json:"has_tv"`
	HasWifi          *bool                   `db:"has_wifi"          json:"has_wifi"`
	HasBalcony       *bool                   `db:"has_balcony"       json:"has_balcony"`
	HasRefrigerator  *bool                   `db:"has_refrigerator"  json:"has_refrigerator"`
	HasMiniBar       *bool                   `db:"has_mini_bar"      json:"has_mini_bar"`
	HasSafe          *bool                   `db:"has_safe"          json:"has_safe"`
	HasBathtub       *bool                   `db:"has_bathtub"       json:"has_bathtub"`
}

type UpdateRoomStatusRequest struct {
	Status model.Status `db:"status" json:"status" validate:"required,enum"`
}

type RoomResponse struct {
	ID               string                 `json:"id"`
	RoomNumber       string                 `json:"room_number"`
	RoomType         model.RoomType         `json:"room_type"`
	CustomRoomType   *string                `json:"custom_room_type"`
	DisplayType      string                 `json:"display_type"`
	BedConfiguration model.BedConfiguration `json:"bed_configuration"`
	FloorNumber      int                    `json:"floor_number"`
	BasePrice        decimal.Decimal        `json:"base_price"`
	MaxOccupancy     int                    `json:"max_occupancy"`
	Status           model.Status           `json:"status"`
	Notes            *string                `json:"notes"`
	model.Amenities
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.CustomRoomType = model.CustomRoomType
	r.DisplayType = model.DisplayType()
	r.BedConfiguration = model.BedConfiguration
	r.FloorNumber = model.FloorNumber
	r.BasePrice = model.BasePrice
	r.MaxOccupancy = model.MaxOccupancy
	r.Status = model.Status
	r.Notes = model.Notes
	r.Amenities = model.Amenities
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type RoomSummaryResponse struct {
	TotalRooms       int            `json:"total_rooms"`
	ActiveRooms      int            `json:"active_rooms"`
	InactiveRooms    int            `json:"inactive_rooms"`
	UnderMaintenance int            `json:"under_maintenance"`
	RoomTypes        map[string]int `json:"room_types"`
}

func (r *RoomSummaryResponse) FromCounts(byStatus, byType []model.StatusCount) {
	r.RoomTypes = make(map[string]int, len(byType))

	for _, row := range byStatus {
		r.TotalRooms += row.Count

		switch model.Status(row.Key) {
		case model.StatusActive:
			r.ActiveRooms = row.Count
		case model.StatusInactive:
			r.InactiveRooms = row.Count
		case model.StatusUnderMaintenance:
			r.UnderMaintenance = row.Count
		}
	}

	for _, row := range byType {
		r.RoomTypes[row.Key] = row.Count
	}
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}
