package domain_test

import (
	"testing"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsVenueAvailableInSchedule(t *testing.T) {
	day := domain.NewDate(2025, 10, 1)
	venue := domain.Venue{
		VenueID: "V001",
		BookingSchedule: []domain.TimeSlot{
			{Date: day, Time: "Morning", EventID: "BKG2001", IsBooked: true},
			{Date: day, Time: "Evening", EventID: "BKG2002", IsBooked: false},
		},
	}

	assert.False(t, domain.IsVenueAvailableInSchedule(venue, day, "Morning"))
	assert.True(t, domain.IsVenueAvailableInSchedule(venue, day, "Afternoon"))
	assert.True(t, domain.IsVenueAvailableInSchedule(venue, day, "Evening"), "unbooked entry does not block")
	assert.True(t, domain.IsVenueAvailableInSchedule(venue, domain.NewDate(2025, 10, 2), "Morning"))
}

func TestTimeSlotConfig(t *testing.T) {
	cfg := domain.NewTimeSlotConfig([]string{"Morning", " Evening ", "Morning", "", "Late Night"})

	assert.Equal(t, []string{"Morning", "Evening", "Late Night"}, cfg.Slots)
	assert.Equal(t, "Morning (9:00 AM - 12:00 PM)", cfg.Names[0])
	assert.Equal(t, "Late Night", cfg.Names[2])
	assert.Equal(t, 1, cfg.Index("Evening"))
	assert.False(t, cfg.Contains("Afternoon"))
}

func TestPriceLogistics(t *testing.T) {
	names, total, err := domain.PriceLogistics([]string{"Sound System", "Event Ushers"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Sound System", "Event Ushers"}, names)
	assert.Equal(t, 1300.0, total)

	_, _, err = domain.PriceLogistics([]string{"Fireworks"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
