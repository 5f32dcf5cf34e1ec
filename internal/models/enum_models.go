package models

// EnumItem pairs a stored enum value with a display label for UI pickers.
type EnumItem struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// BookingStatusItems lists the booking lifecycle statuses.
func BookingStatusItems() []EnumItem {
	return []EnumItem{
		{Value: BookingStatusReserved, Text: "Reserved"},
		{Value: BookingStatusCheckedIn, Text: "Checked in"},
		{Value: BookingStatusCheckedOut, Text: "Checked out"},
		{Value: BookingStatusCancelled, Text: "Cancelled"},
		{Value: BookingStatusNoShow, Text: "No show"},
	}
}

// PaymentStatusItems lists the derived payment statuses.
func PaymentStatusItems() []EnumItem {
	return []EnumItem{
		{Value: PaymentStatusPaid, Text: "Paid"},
		{Value: PaymentStatusPartial, Text: "Partially paid"},
		{Value: PaymentStatusUnpaid, Text: "Unpaid"},
	}
}

// ChargeTypeItems lists the booking charge types.
func ChargeTypeItems() []EnumItem {
	return []EnumItem{
		{Value: ChargeTypeHour, Text: "Hourly"},
		{Value: ChargeTypeNight, Text: "Overnight"},
	}
}

// BookingDetailTypeItems lists the charge line types.
func BookingDetailTypeItems() []EnumItem {
	return []EnumItem{
		{Value: BookingDetailTypeRoom, Text: "Room"},
		{Value: BookingDetailTypeService, Text: "Service"},
		{Value: BookingDetailTypeFee, Text: "Fee"},
		{Value: BookingDetailTypeAdjustment, Text: "Adjustment"},
	}
}

// RoomStatusItems lists the room occupancy statuses.
func RoomStatusItems() []EnumItem {
	return []EnumItem{
		{Value: RoomStatusAvailable, Text: "Available"},
		{Value: RoomStatusOccupied, Text: "Occupied"},
		{Value: RoomStatusOutOfService, Text: "Out of service"},
	}
}

// HousekeepingStatusItems lists the housekeeping statuses.
func HousekeepingStatusItems() []EnumItem {
	return []EnumItem{
		{Value: HousekeepingStatusClean, Text: "Clean"},
		{Value: HousekeepingStatusDirty, Text: "Dirty"},
		{Value: HousekeepingStatusInspected, Text: "Inspected"},
		{Value: HousekeepingStatusOutOfOrder, Text: "Out of order"},
	}
}
