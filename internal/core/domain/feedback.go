package domain

const (
	MinRating = 1
	MaxRating = 5
)

// EventFeedback is one user's rating of a confirmed or completed booking.
type EventFeedback struct {
	FeedbackID           string
	BookingID            string
	EventTitle           string
	OrganizerName        string
	EventDate            Date
	VenueName            string
	SubmittedBy          string
	SubmissionDate       Date
	VenueRating          int
	OrganizationRating   int
	LogisticsRating      int
	OverallRating        int
	WouldRecommend       bool
	VenueComments        string
	OrganizationComments string
	LogisticsComments    string
	GeneralComments      string
	Suggestions          string
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
