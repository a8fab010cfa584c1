package domain

import "strings"

// TimeSlot is one occupied entry in a venue's schedule. EventID holds the
// booking ID that occupies the slot.
type TimeSlot struct {
	Date     Date
	Time     string
	EventID  string
	IsBooked bool
}

type Venue struct {
	VenueID       string
	Name          string
	Address       string
	Capacity      int
	RentalCost    float64
	ContactPerson string
	PhoneNumber   string
	// BookingSchedule is derived from the live bookings and rebuilt by the
	// application state after every booking mutation.
	BookingSchedule []TimeSlot
}

// Snapshot returns the catalog part of the venue, without its schedule.
func (v Venue) Snapshot() Venue {
	s := v
	s.BookingSchedule = nil
	return s
}

// IsAvailableInSchedule reports whether the venue's own schedule has no
// booked entry at date and time.
func (v Venue) IsAvailableInSchedule(date Date, time string) bool {
	for _, slot := range v.BookingSchedule {
		if slot.IsBooked && slot.Date == date && slot.Time == time {
			return false
		}
	}
	return true
}

// IsVenueAvailableInSchedule is the function form of Venue.IsAvailableInSchedule.
func IsVenueAvailableInSchedule(v Venue, date Date, time string) bool {
	return v.IsAvailableInSchedule(date, time)
}

// SampleVenues is the catalog seeded when no venue data exists yet.
func SampleVenues() []Venue {
	return []Venue{
		{VenueID: "V001", Name: "Hall A", Address: "Level 1, Convention Center", Capacity: 300, RentalCost: 2500, ContactPerson: "Ahmad Rahman", PhoneNumber: "03-1234-5678"},
		{VenueID: "V002", Name: "Hall B", Address: "Level 2, Convention Center", Capacity: 500, RentalCost: 4000, ContactPerson: "Siti Nurhaliza", PhoneNumber: "03-2345-6789"},
		{VenueID: "V003", Name: "Hall C", Address: "Level 3, Convention Center", Capacity: 800, RentalCost: 6500, ContactPerson: "Lee Wei Ming", PhoneNumber: "03-3456-7890"},
		{VenueID: "V004", Name: "Auditorium", Address: "Main Building, Tech Plaza", Capacity: 1200, RentalCost: 10000, ContactPerson: "Maria Santos", PhoneNumber: "03-4567-8901"},
	}
}

var slotHours = map[string]string{
	"Morning":   "9:00 AM - 12:00 PM",
	"Afternoon": "1:00 PM - 5:00 PM",
	"Evening":   "6:00 PM - 10:00 PM",
}

// TimeSlotConfig is the fixed, ordered set of bookable slots.
type TimeSlotConfig struct {
	Slots []string
	Names []string
}

func DefaultTimeSlots() TimeSlotConfig {
	return NewTimeSlotConfig([]string{"Morning", "Afternoon", "Evening"})
}

func NewTimeSlotConfig(slots []string) TimeSlotConfig {
	var cfg TimeSlotConfig
	for _, s := range slots {
		s = strings.TrimSpace(s)
		if s == "" || cfg.Index(s) >= 0 {
			continue
		}
		name := s
		if hours, ok := slotHours[s]; ok {
			name = s + " (" + hours + ")"
		}
		cfg.Slots = append(cfg.Slots, s)
		cfg.Names = append(cfg.Names, name)
	}
	return cfg
}

// Index returns the position of slot, or -1.
func (c TimeSlotConfig) Index(slot string) int {
	for i, s := range c.Slots {
		if s == slot {
			return i
		}
	}
	return -1
}

func (c TimeSlotConfig) Contains(slot string) bool {
	return c.Index(slot) >= 0
}
