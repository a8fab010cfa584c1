package domain

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

// EventBooking pairs a registration snapshot with a date, slot and venue
// snapshot. The embedded copies are frozen at booking time.
type EventBooking struct {
	BookingID      string
	Registration   EventRegistration
	EventDate      Date
	EventTime      string
	Venue          Venue
	Status         BookingStatus
	FinalCost      float64
	LogisticsItems []string
	LogisticsCost  float64
}

// IsLive reports whether the booking still holds its slot.
func (b EventBooking) IsLive() bool {
	return b.Status != BookingCancelled
}

func (b EventBooking) EventID() string {
	return b.Registration.EventID
}

func (b EventBooking) OwnedBy(userID string) bool {
	return b.Registration.OwnedBy(userID)
}

// Occupies reports whether b is a live booking of venueID at date and time.
func (b EventBooking) Occupies(venueID string, date Date, time string) bool {
	return b.IsLive() && b.Venue.VenueID == venueID && b.EventDate == date && b.EventTime == time
}

// Holds reports whether b is a live booking of eventID at date and time.
func (b EventBooking) Holds(eventID string, date Date, time string) bool {
	return b.IsLive() && b.Registration.EventID == eventID && b.EventDate == date && b.EventTime == time
}

// LogisticsItem is a fixed-price add-on service.
type LogisticsItem struct {
	Name  string
	Price float64
}

var LogisticsCatalog = []LogisticsItem{
	{Name: "Sound System", Price: 800},
	{Name: "Stage Lighting", Price: 600},
	{Name: "LED Video Wall", Price: 1500},
	{Name: "Catering Service", Price: 3000},
	{Name: "Security Team", Price: 700},
	{Name: "Photography & Videography", Price: 1200},
	{Name: "Event Ushers", Price: 500},
}

// PriceLogistics resolves catalog item names and returns them with their
// total. Unknown names are rejected.
func PriceLogistics(names []string) ([]string, float64, error) {
	var (
		picked []string
		total  float64
	)
	for _, name := range names {
		item, ok := findLogistics(name)
		if !ok {
			return nil, 0, &InputError{Field: "logistics", Value: name}
		}
		picked = append(picked, item.Name)
		total += item.Price
	}
	return picked, total, nil
}

func findLogistics(name string) (LogisticsItem, bool) {
	for _, item := range LogisticsCatalog {
		if item.Name == name {
			return item, true
		}
	}
	return LogisticsItem{}, false
}
