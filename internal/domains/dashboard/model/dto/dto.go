package dto

type DashboardStatsResponse struct {
	NewBookings      int `json:"new_bookings"`
	UpcomingCheckIns int `json:"upcoming_check_ins"`
	OccupiedRooms    int `json:"occupied_rooms"`
	CheckingOutToday int `json:"checking_out_today"`
	AvailableRooms   int `json:"available_rooms"`
}
