package models

// ReportSummary aggregates revenue and distinct guests over a date range.
// Only checked-out, fully paid bookings contribute.
type ReportSummary struct {
	RoomAmount    float64 `json:"room_amount"`
	ServiceAmount float64 `json:"service_amount"`
	GuestCount    int     `json:"guest_count"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// RoomTypeRevenueItem is room-charge revenue attributed to one room type.
type RoomTypeRevenueItem struct {
	RoomType string  `json:"room_type"`
	Revenue  float64 `json:"revenue"`
}

// ServiceRevenueItem is service-charge revenue attributed to one service.
type ServiceRevenueItem struct {
	ServiceName string  `json:"service_name"`
	Revenue     float64 `json:"revenue"`
}

// GuestDistribution splits the guests with a settled stay in the range into
// first-time guests and returning guests. A guest counts as new when their
// earliest settled checkout falls inside the range.
type GuestDistribution struct {
	NewGuests        int     `json:"new_guests"`
	ReturningGuests  int     `json:"returning_guests"`
	PercentNew       float64 `json:"percent_new"`
	PercentReturning float64 `json:"percent_returning"`
}
