package models

import "testing"

func TestEnumItemsCoverStoredValues(t *testing.T) {
	cases := []struct {
		name  string
		items []EnumItem
		valid func(string) bool
		count int
	}{
		{"booking statuses", BookingStatusItems(), IsValidBookingStatus, 5},
		{"payment statuses", PaymentStatusItems(), IsValidPaymentStatus, 3},
		{"charge types", ChargeTypeItems(), IsValidChargeType, 2},
		{"booking detail types", BookingDetailTypeItems(), IsValidBookingDetailType, 4},
		{"room statuses", RoomStatusItems(), IsValidRoomStatus, 3},
		{"housekeeping statuses", HousekeepingStatusItems(), IsValidHousekeepingStatus, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.items) != tc.count {
				t.Fatalf("got %d items, want %d", len(tc.items), tc.count)
			}
			seen := map[string]bool{}
			for _, item := range tc.items {
				if !tc.valid(item.Value) {
					t.Fatalf("item value %q is not a stored value", item.Value)
				}
				if item.Text == "" {
					t.Fatalf("item %q has no display text", item.Value)
				}
				if seen[item.Value] {
					t.Fatalf("duplicate item value %q", item.Value)
				}
				seen[item.Value] = true
			}
		})
	}
}
