package dto

import (
	"hotel/internal/domains/calendar/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/timezone"
)

type GridRequest struct {
	Start string `json:"start" validate:"omitempty,date"`
	Days  *int   `json:"days"  validate:"omitempty,min=1,max=62"`
}

type CellResponse struct {
	Date      string      `json:"date"`
	State     model.State `json:"state"`
	BookingID *string     `json:"booking_id"`
	GuestName *string     `json:"guest_name"`
	IsArrival bool        `json:"is_arrival"`
}

type RoomResponse struct {
	ID          string           `json:"id"`
	RoomNumber  string           `json:"room_number"`
	RoomType    string           `json:"room_type"`
	FloorNumber int              `json:"floor_number"`
	Status      roomModel.Status `json:"status"`
}

type RowResponse struct {
	Room  RoomResponse   `json:"room"`
	Cells []CellResponse `json:"cells"`
}

type TotalResponse struct {
	Date      string `json:"date"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

type GridResponse struct {
	Start  string          `json:"start"`
	End    string          `json:"end"`
	Days   int             `json:"days"`
	Dates  []string        `json:"dates"`
	Rows   []RowResponse   `json:"rows"`
	Totals []TotalResponse `json:"totals"`
}

func (g *GridResponse) FromModel(grid model.Grid) {
	g.Start = timezone.FormatDate(grid.Start)
	g.End = timezone.FormatDate(grid.Start.AddDate(0, 0, grid.Days-1))
	g.Days = grid.Days
	g.Dates = make([]string, len(grid.Dates))
	g.Rows = make([]RowResponse, len(grid.Rows))
	g.Totals = make([]TotalResponse, len(grid.Totals))

	for i, date := range grid.Dates {
		g.Dates[i] = timezone.FormatDate(date)
	}

	for i, row := range grid.Rows {
		cells := make([]CellResponse, len(row.Cells))

		for j, cell := range row.Cells {
			cells[j] = CellResponse{
				Date:      timezone.FormatDate(cell.Date),
				State:     cell.State,
				BookingID: cell.BookingID,
				GuestName: cell.GuestName,
				IsArrival: cell.IsArrival,
			}
		}

		g.Rows[i] = RowResponse{
			Room: RoomResponse{
				ID:          row.Room.ID,
				RoomNumber:  row.Room.RoomNumber,
				RoomType:    row.Room.DisplayType(),
				FloorNumber: row.Room.FloorNumber,
				Status:      row.Room.Status,
			},
			Cells: cells,
		}
	}

	for i, total := range grid.Totals {
		g.Totals[i] = TotalResponse{
			Date:      timezone.FormatDate(total.Date),
			Occupied:  total.Occupied,
			Available: total.Available,
		}
	}
}
