package entity

type Hall struct {
	Base
	Name       string `db:"name"`
	HallType   string `db:"hall_type"`
	TotalSeats int    `db:"total_seats"`
}
