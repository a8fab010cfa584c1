package domain

type RegistrationStatus string

const (
	RegistrationUnscheduled RegistrationStatus = "UNSCHEDULED"
	RegistrationScheduled   RegistrationStatus = "SCHEDULED"
	RegistrationCancelled   RegistrationStatus = "CANCELLED"
)

const (
	MinExpectedGuests  = 100
	MaxExpectedGuests  = 1200
	MinEstimatedBudget = 2500.0
	MinProducts        = 1
	MaxProducts        = 20
)

// Product is one device presented at a launch event.
type Product struct {
	Name  string
	Model string
	Price float64
}

// EventRegistration is a proposed launch event awaiting a venue and slot.
type EventRegistration struct {
	EventID         string
	Organizer       OrganizerInfo
	EventTitle      string
	Manufacturer    string
	Description     string
	ExpectedGuests  int
	EstimatedBudget float64
	Products        []Product
	Status          RegistrationStatus
}

func (r EventRegistration) OwnedBy(userID string) bool {
	return SameUser(r.Organizer.UserID, userID)
}

// Snapshot returns a deep copy suitable for embedding in a booking.
func (r EventRegistration) Snapshot() EventRegistration {
	s := r
	s.Products = append([]Product(nil), r.Products...)
	return s
}
